package domain

const (
	DefaultAPIBaseURL                 = "http://localhost:8000/api"
	DefaultAPITimeoutSeconds          = 10
	DefaultUserAgent                  = "operadoras-cli"
	DefaultPage                       = 1
	DefaultPageSize                   = 10
	DefaultLogLevel                   = "warn"
	DefaultLogFormat                  = "console"
	DefaultObservabilityListenAddress = ""
)

const (
	OperatorsPath        = "/operadoras"
	operatorExpensesPath = "despesas"
)

// Query parameter names understood by the collection endpoint.
const (
	ParamPage   = "page"
	ParamLimit  = "limit"
	ParamSearch = "search"
)

// Messages surfaced through RequestStatus.ErrorMessage.
const (
	MessageServerError         = "server error"
	MessageNoResponse          = "no response from server, check your connection"
	MessageRequestConfig       = "failed to configure the request"
	MessageDetailsUnavailable  = "could not load operator details"
	MessageInvalidResponseBody = "invalid response body"
)
