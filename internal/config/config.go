package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Age"
	AppID             = "com.github.tartampluch.go-age"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagServe        = "serve"
	FlagPort         = "port"
	FlagVCard        = "vcard"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescServe    = "Serve the calculator to a browser instead of opening a window"
	FlagDescPort     = "Port of the browser calculator (with -serve)"
	FlagDescVCard    = "Prefill the desktop birthdate from the BDAY of a .vcf contact card"
	MsgVersionOutput = "%s version %s (%s/%s)\n"

	// EnvCSRFKey holds a hex-encoded 32 byte key for form protection.
	EnvCSRFKey = "GO_AGE_CSRF_KEY"
)

// -----------------------------------------------------------------------------
// Birthdate Fields
// -----------------------------------------------------------------------------

const (
	FieldYears  = "years"
	FieldMonths = "months"
	FieldDays   = "days"
	FieldDate   = "date"

	// Placeholder is shown wherever a field or a result is unset.
	Placeholder = "--"

	MinMonth   = 1
	MaxMonth   = 12
	MinDay     = 1
	MaxDay     = 31
	MinYear    = 0
	MonthsYear = 12

	DigitsDay   = 2
	DigitsMonth = 2
	DigitsYear  = 4

	DaysFebruary     = 28
	DaysFebruaryLeap = 29
	DaysShortMonth   = 30
	DaysLongMonth    = 31
)

// -----------------------------------------------------------------------------
// Validation Messages
// -----------------------------------------------------------------------------

// Message IDs are the go-i18n keys; the texts are the English defaults.
const (
	MsgIDRequired     = "err_required"
	MsgIDInvalidYear  = "err_invalid_year"
	MsgIDInvalidMonth = "err_invalid_month"
	MsgIDInvalidDay   = "err_invalid_day"
	MsgIDDayInMonth   = "err_day_in_month"
	MsgIDFutureDate   = "err_future_date"

	MsgRequired     = "This field is required"
	MsgInvalidYear  = "Invalid year"
	MsgInvalidMonth = "Must be a valid month"
	MsgInvalidDay   = "Must be a valid day"
	MsgDayInMonth   = "Invalid day for the given month"
	MsgFutureDate   = "Must be in the past"
)

// -----------------------------------------------------------------------------
// Translation Keys (UI Labels)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyLblDay         = "lbl_day"
	TKeyLblMonth       = "lbl_month"
	TKeyLblYear        = "lbl_year"
	TKeyHintDay        = "hint_day"
	TKeyHintMonth      = "hint_month"
	TKeyHintYear       = "hint_year"
	TKeyBtnCalculate   = "btn_calculate"
	TKeyBtnImport      = "btn_import"
	TKeyBtnExport      = "btn_export"
	TKeyLblNext        = "lbl_next_birthday" // Requires Date and Age
	TKeyResYears       = "res_years"
	TKeyResMonths      = "res_months"
	TKeyResDays        = "res_days"
	TKeyLblFooter      = "lbl_footer"
	TKeyEvtSummaryAge  = "event_summary_age"   // Requires Age
	TKeyEvtSummaryBday = "event_summary_birth" // For age 0
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Age//Engine//EN"
	ICalCalName = "Birthday"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goage"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"

	// FormatUID expects the birthdate (YYYYMMDD), the event year and the domain.
	FormatUID = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	MaxVCardSize = 1024 * 1024 // 1MB

	ExtVCF      = ".vcf"
	ExtVCard    = ".vcard"
	ExtICS      = ".ics"
	ExportName  = "birthdays.ics"
	NextDateFmt = "Monday 2 January 2006"
)

// -----------------------------------------------------------------------------
// Network, Timeouts & Sessions
// -----------------------------------------------------------------------------

const (
	DefaultPort        = "18081"
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	AddrSeparator      = ":"

	SessionCookieName = "go_age_session"
	SessionTTL        = 24 * time.Hour
	CSRFKeyLength     = 32

	RouteRoot     = "/"
	RouteField    = "/field/{name}"
	RouteCalendar = "/calendar.ics"
	RouteMetrics  = "/metrics"
	RouteScript   = "/form.js"
	URLParamName  = "name"
	FormKeyValue  = "value"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType    = "Content-Type"
	HeaderCacheControl   = "Cache-Control"
	HeaderETag           = "ETag"
	HeaderXContentType   = "X-Content-Type-Options"
	HeaderXFrameOptions  = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderCSP            = "Content-Security-Policy"
	HeaderIfNoneMatch    = "If-None-Match"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextHTML        = "text/html; charset=utf-8"
	MimeJavaScript      = "text/javascript; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	FrameDeny           = "DENY"
	ReferrerStrict      = "strict-origin-when-cross-origin"
	CSPSelf             = "default-src 'self'; style-src 'self' 'unsafe-inline'"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrUnknownField  = "unknown birthdate field"
	ErrNoBirthday    = "no contact card with a birthday"
	ErrVCardParse    = "failed to parse vCard stream"
	ErrICalEncode    = "failed to encode iCalendar data"
	ErrDateParse     = "unable to parse date"
	ErrNoResult      = "no age has been calculated yet"
	ErrServerStartup = "server startup failed"
	ErrServerShut    = "server shutdown failed"
	ErrPortRequired  = "server port is required"
	ErrTemplate      = "failed to render page"
	ErrWriteResp     = "failed to write response body"
	ErrCSRFKey       = "csrf key must be 64 hex characters"
	ErrRandom        = "failed to read random bytes"
	ErrLogFile       = "failed to open log file"
	ErrCacheDir      = "could not determine user cache dir"
	ErrCreateDir     = "could not create app cache dir"
	ErrAppFailed     = "application failed unexpectedly"
	ErrVCardOpen     = "failed to open vCard file"
	ErrVCardServe    = "-vcard only applies to the desktop window, not -serve"
	ErrLocalesAccess = "failed to access embedded locales"
	ErrLocaleLoad    = "failed to load locale file"
	ErrICalWrite     = "failed to write calendar file"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgNoResult    = "No age calculated yet."
	HTTPMsgInternalErr = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummaryAge   = "Birthday (%d)"
	FallbackSummaryBirth = "Birth"

	MsgFieldSet      = "Birthdate field updated"
	MsgSubmitOK      = "Age calculated"
	MsgSubmitInvalid = "Birthdate rejected"
	MsgVCardImported = "Birthdate imported from vCard"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgSessionNew    = "Session created"
	MsgSessionPurged = "Expired sessions removed"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgCSRFGenerated = "No csrf key configured, generated a random one"
)

// -----------------------------------------------------------------------------
// Metrics
// -----------------------------------------------------------------------------

const (
	MetricSubmissions      = "go_age_submissions_total"
	MetricValidationErrors = "go_age_validation_errors_total"
	MetricActiveSessions   = "go_age_active_sessions"
	LabelOutcome           = "outcome"
	LabelField             = "field"
	LabelKind              = "kind"
	OutcomeOK              = "ok"
	OutcomeInvalid         = "invalid"
	KindMissing            = "missing"
	KindInvalid            = "invalid"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyField     = "field"
	LogKeyValue     = "value"
	LogKeyErrors    = "errors"
	LogKeyYears     = "years"
	LogKeyMonths    = "months"
	LogKeyDays      = "days"
	LogKeyPort      = "port"
	LogKeySession   = "session"
	LogKeyCount     = "count"
	LogKeyFile      = "file"
	LogKeyKey       = "key"
	LogKeyETag      = "etag"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI     = "ui"
	CompEngine = "engine"
	CompServer = "server"
	CompMain   = "main"
	CompI18n   = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	WindowWidth         = 520
	LayoutColumnsForm   = 3
	LayoutColumnsResult = 2
	DefaultLanguage     = "en"
)
