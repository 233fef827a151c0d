package features

// Feature names shared with the trained model. Renaming any of these silently
// zeroes the feature at inference time.
const (
	NumDots            = "NumDots"
	SubdomainLevel     = "SubdomainLevel"
	PathLevel          = "PathLevel"
	URLLength          = "UrlLength"
	NumDash            = "NumDash"
	NumDashInHostname  = "NumDashInHostname"
	NumUnderscore      = "NumUnderscore"
	NumQueryComponents = "NumQueryComponents"
	NumAmpersand       = "NumAmpersand"
	NumHash            = "NumHash"
	NumNumericChars    = "NumNumericChars"
	NoHTTPS            = "NoHttps"
	IPAddress          = "IpAddress"
	HostnameLength     = "HostnameLength"
	PathLength         = "PathLength"
	QueryLength        = "QueryLength"
	AtSymbol           = "AtSymbol"
	TildeSymbol        = "TildeSymbol"
	DoubleSlashInPath  = "DoubleSlashInPath"
	URLLengthRT        = "UrlLengthRT"
	DomainInPaths      = "DomainInPaths"
	DomainInSubdomains = "DomainInSubdomains"

	RedirectCount                      = "RedirectCount"
	PctExtHyperlinks                   = "PctExtHyperlinks"
	PctNullSelfRedirectHyperlinks      = "PctNullSelfRedirectHyperlinks"
	PctExtNullSelfRedirectHyperlinksRT = "PctExtNullSelfRedirectHyperlinksRT"
	PctExtResourceUrls                 = "PctExtResourceUrls"
	PctExtResourceUrlsRT               = "PctExtResourceUrlsRT"
	InsecureForms                      = "InsecureForms"
	AbnormalFormAction                 = "AbnormalFormAction"
	AbnormalExtFormActionR             = "AbnormalExtFormActionR"
	ImagesOnlyInForm                   = "ImagesOnlyInForm"
	SubmitInfoToEmail                  = "SubmitInfoToEmail"
	IframeOrFrame                      = "IframeOrFrame"
	Favicon                            = "Favicon"
	ExtFavicon                         = "ExtFavicon"
	FrequentDomainNameMismatch         = "FrequentDomainNameMismatch"

	DomainAgeDays = "DomainAgeDays"
)

// LexicalNames lists, in extraction order, every feature Lexical produces.
var LexicalNames = []string{
	NumDots, SubdomainLevel, PathLevel, URLLength, NumDash, NumDashInHostname,
	NumUnderscore, NumQueryComponents, NumAmpersand, NumHash, NumNumericChars,
	NoHTTPS, IPAddress, HostnameLength, PathLength, QueryLength, AtSymbol,
	TildeSymbol, DoubleSlashInPath, URLLengthRT, DomainInPaths, DomainInSubdomains,
}

// HTMLNames lists, in extraction order, every feature HTML produces.
var HTMLNames = []string{
	RedirectCount, PctExtHyperlinks, PctNullSelfRedirectHyperlinks,
	PctExtNullSelfRedirectHyperlinksRT, PctExtResourceUrls, PctExtResourceUrlsRT,
	InsecureForms, AbnormalFormAction, AbnormalExtFormActionR, ImagesOnlyInForm,
	SubmitInfoToEmail, IframeOrFrame, Favicon, ExtFavicon, FrequentDomainNameMismatch,
}
