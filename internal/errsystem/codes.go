package errsystem

var (
	ErrInvalidConfiguration = errorType{Code: "UL-0001", Message: "Invalid configuration"}
	ErrLoadTaskDefinitions  = errorType{Code: "UL-0002", Message: "Unable to load the task definitions file"}
	ErrTaskNotFound         = errorType{Code: "UL-0003", Message: "Task not found in the definitions file"}
	ErrLoadDataset          = errorType{Code: "UL-0004", Message: "Unable to load the dataset"}
	ErrDatasetValidation    = errorType{Code: "UL-0005", Message: "Dataset is missing a column the task requires"}
	ErrRenderPrompt         = errorType{Code: "UL-0006", Message: "Unable to render the task prompt"}
	ErrWriteOutput          = errorType{Code: "UL-0007", Message: "Unable to write output file"}
	ErrArgillaExport        = errorType{Code: "UL-0008", Message: "Unable to export records for Argilla"}
	ErrApiRequest           = errorType{Code: "UL-0009", Message: "Argilla API request failed"}
)
