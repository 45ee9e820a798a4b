package web

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"github.com/pkg/errors"

	"github.com/royalket/demo-file-merger/log"
	"github.com/royalket/demo-file-merger/merger/analytics"
	"github.com/royalket/demo-file-merger/merger/constants"
	"github.com/royalket/demo-file-merger/merger/intake"
	"github.com/royalket/demo-file-merger/merger/models"
	"github.com/royalket/demo-file-merger/merger/output"
	"github.com/royalket/demo-file-merger/merger/pipeline"
	"github.com/royalket/demo-file-merger/merger/reference"
	"github.com/royalket/demo-file-merger/merger/utils"
)

const previewSampleSize = 5

// maxUploadBytes caps the whole multipart request body. Enforced here at
// the ingestion boundary, never inside the pipeline.
func maxUploadBytes() int64 {
	return int64(utils.GetEnvInt("MERGER_MAX_UPLOAD_BYTES", 16<<20))
}

func processFiles(w http.ResponseWriter, r *http.Request) {
	files, err := readUpload(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	outputFormat := formValue(r, "outputFormat", constants.DefaultOutputFormat)
	dateFormat := formValue(r, "dateFormat", constants.DefaultDateFormat)

	claims, err := consolidate(files, dateFormat)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(claims) == 0 {
		writeError(w, r, http.StatusBadRequest, constants.NoDataProcessedErr)
		return
	}

	var (
		mimetype string
		filename string
		write    func(io.Writer, []models.ConsolidatedClaim) error
	)
	switch outputFormat {
	case "csv":
		mimetype, filename, write = "text/csv", constants.CSVFileName, output.WriteCSV
	case "excel":
		mimetype, filename, write =
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			constants.XLSXFileName, output.WriteXLSX
	case "json":
		mimetype, filename, write = "application/json", constants.JSONFileName, output.WriteJSON
	default:
		writeError(w, r, http.StatusBadRequest, constants.InvalidOutputFormatErr)
		return
	}

	w.Header().Set("Content-Type", mimetype)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := write(w, claims); err != nil {
		// Headers are already out; all we can do is log
		log.API.Errorf("Failed to write %s response: %s", outputFormat, err.Error())
	}
}

func previewData(w http.ResponseWriter, r *http.Request) {
	files, err := readUpload(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	claims, err := consolidate(files, constants.DefaultDateFormat)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(claims) == 0 {
		writeError(w, r, http.StatusBadRequest, constants.NoDataProcessedErr)
		return
	}

	report := analytics.Summarize(claims)
	sample := claims
	if len(sample) > previewSampleSize {
		sample = sample[:previewSampleSize]
	}

	render.JSON(w, r, &previewResponse{
		AnalyticsReport: report,
		SampleClaims:    sample,
	})
}

// previewResponse is the analytics report plus a bounded sample of the
// consolidated rows. Empty fields ship as empty strings; the rendering
// surface substitutes its own "N/A" markers.
type previewResponse struct {
	models.AnalyticsReport
	SampleClaims []models.ConsolidatedClaim `json:"sample_claims"`
}

// consolidate runs the full pipeline over the uploaded payloads.
func consolidate(files map[string][]byte, dateFormat string) ([]models.ConsolidatedClaim, error) {
	refs := reference.Load(files)
	records, patients := intake.BuildTables(files)
	return pipeline.Consolidate(records, patients, refs, dateFormat)
}

// readUpload reads every uploaded file part into memory, keyed by
// filename. The body is capped at the configured upload ceiling.
func readUpload(w http.ResponseWriter, r *http.Request) (map[string][]byte, error) {
	max := maxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, max)
	if err := r.ParseMultipartForm(max); err != nil {
		return nil, errors.Wrap(err, "failed to parse upload")
	}

	files := make(map[string][]byte)
	for _, headers := range r.MultipartForm.File {
		for _, header := range headers {
			if header.Filename == "" {
				continue
			}
			part, err := header.Open()
			if err != nil {
				return nil, errors.Wrapf(err, "failed to open %s", header.Filename)
			}
			data, err := io.ReadAll(part)
			if cerr := part.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read %s", header.Filename)
			}
			files[header.Filename] = data
		}
	}

	if len(files) == 0 {
		return nil, errors.New(constants.NoFilesUploadedErr)
	}
	return files, nil
}

func formValue(r *http.Request, key, defaultVal string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return defaultVal
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": message})
}

func getVersion(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"version": constants.Version})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
