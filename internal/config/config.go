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

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Wareki/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Wareki"
	AppID             = "com.github.tartampluch.go-wareki"
	CmdName           = "go-wareki"
	KeyringService    = "com.github.tartampluch.go-wareki"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "config.toml"
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
	FlagConfig    = "config"
	FlagLang      = "lang"
	FlagEncoding  = "encoding"
	FlagFoldWidth = "fold-width"
	FlagFormat    = "format"
	FlagDebug     = "debug"
	FlagFile      = "file"
	FlagURL       = "url"
	FlagUser      = "user"
	FlagPort      = "port"
	FlagRefresh   = "refresh"
	FlagGannen    = "gannen"

	FlagDescConfig    = "Settings file (default: <user config dir>/go-wareki/config.toml)"
	FlagDescLang      = "Output language for text format (ja, en)"
	FlagDescEncoding  = "Encoding of date arguments (utf-8, shift_jis, euc-jp, iso-2022-jp)"
	FlagDescFoldWidth = "Fold full-width digits and separators to ASCII before parsing"
	FlagDescFormat    = "Output format: json or text"
	FlagDescDebug     = "Enable debug logging to stderr"
	FlagDescFile      = "Path to a .vcf file"
	FlagDescURL       = "CardDAV/WebDAV URL of a vCard collection"
	FlagDescUser      = "HTTP Basic Auth user; the password is read from the OS keyring"
	FlagDescPort      = "Local HTTP port"
	FlagDescRefresh   = "Era calendar refresh interval"
	FlagDescGannen    = "Write the first year of an era as 元"

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Output Formats
// -----------------------------------------------------------------------------

const (
	FormatJSON = "json"
	FormatText = "text"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyEraPrefix     = "era_"                 // Followed by the era short code, e.g. era_R
	TKeyWeekdayPrefix = "weekday_"             // Followed by 0 (Sunday) .. 6 (Saturday)
	TKeyFmtWareki     = "fmt_wareki"           // Requires Era, Year, Month, Day
	TKeyFmtGannen     = "fmt_gannen"           // Requires Era, Month, Day
	TKeyFmtWestern    = "fmt_western"          // Requires Year, Month, Day
	TKeyFmtInfo       = "fmt_info"             // Requires the DateInfo fields
	TKeyFmtBirthday   = "fmt_birthday"         // Requires Name, Western, Era
	TKeyFmtBdayNoYear = "fmt_birthday_no_year" // Requires Name, Month, Day
	TKeyLblValid      = "lbl_valid"
	TKeyLblInvalid    = "lbl_invalid"
	TKeyEvtEraStart   = "event_era_start" // Requires Era, Code
	TKeyEvtEraRange   = "event_era_range" // Requires Start, End
	TKeyEvtEraOpen    = "event_era_open"  // Requires Start
	TKeyCalName       = "calendar_name"

	// Reason keys follow the wareki.ErrorKind values.
	TKeyReasonPrefix = "reason_"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	DefaultPort       = "18081"
	DefaultRefreshMin = 60
	DefaultLanguage   = "ja"
	DefaultEncoding   = "utf-8"
	DefaultFormat     = FormatJSON
	DefaultLeapYear   = 2000 // Leap year fallback for dates like --02-29
	UIDSalt           = "go-wareki-v1-"
)

// SupportedLanguages lists the embedded locales (BCP 47).
var SupportedLanguages = []string{"ja", "en"}

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Wareki//Engine//JA"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gowareki"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	FormatEraUID       = "era-%s@%s"
	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	MinPort = 1
	MaxPort = 65535

	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	RouteCalendar = "/eras.ics"
	RouteToEra    = "/api/era"
	RouteToWest   = "/api/western"
	RouteValidate = "/api/validate"
	RouteInfo     = "/api/info"
	RouteEras     = "/api/eras"

	QueryDate = "date"
	QueryTS   = "ts"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty = "configuration error: local path is empty"
	ErrWebURLEmpty    = "configuration error: web URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrModeUnsupport  = "configuration error: unsupported source mode"
	ErrSourceMissing  = "one of --file or --url is required"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortNumber     = "server port must be a number"
	ErrPortRange      = "server port must be between 1 and 65535"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrTimestamp      = "invalid timestamp"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrConfigDir      = "could not determine user config dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrSettingsLoad   = "failed to load settings file"
	ErrSettingsValue  = "invalid settings value"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrEncoding       = "unsupported text encoding"
	ErrDecode         = "failed to decode input"
	ErrOutputFormat   = "unsupported output format"
	ErrCalendarGen    = "failed to generate era calendar"
	ErrUserRequired   = "--user is required"
	ErrPassRead       = "failed to read password from stdin"
	ErrPassStore      = "failed to store password in the OS keyring"
	ErrRefreshValue   = "refresh interval must be positive"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgMissingDate  = "missing date parameter"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackName = "Unknown"

	MsgAppStop       = "Application stopped gracefully"
	MsgAppStarting   = "Starting application"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgAnnotateStart = "vCard annotation started"
	MsgAnnotateDone  = "vCard annotation finished"
	MsgCalendarBuilt = "Era calendar generated"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgRefreshStart  = "Calendar refresher started"
	MsgRefreshStop   = "Calendar refresher stopping due to context cancellation"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgPassSaved     = "Password stored in the OS keyring"
	MsgErrorOutput   = "error: %s\n"
	MsgSettingsNone  = "No settings file, using defaults"
	MsgSettingsRead  = "Settings file loaded"
	MsgInputRejected = "Input rejected"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyConverted = "birthdays_converted"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyReason    = "reason"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyPath      = "path"
	LogKeyRoute     = "route"
	LogKeyDuration  = "duration_ms"

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
	CompCLI      = "cli"
	CompEngine   = "engine"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
)
