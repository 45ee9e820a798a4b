package constants

const Version = "1.0.0"

const (
	DefaultDateFormat   = "YYYY-MM-DD"
	DefaultOutputFormat = "csv"
)

// Download filenames served by the process endpoint.
const (
	CSVFileName  = "medical_claims_report.csv"
	XLSXFileName = "medical_claims_report.xlsx"
	JSONFileName = "medical_claims_report.json"
)

const MissingRecordsErr = "records Excel/CSV file is required"
const NoClaimIDColumnErr = "could not find claim_id column in records data"
const NoFilesUploadedErr = "No files uploaded"
const NoDataProcessedErr = "No data could be processed"
const InvalidOutputFormatErr = "Invalid output format"
