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
	AppName           = "Go Dual Clock"
	AppID             = "com.github.tartampluch.go-dualclock"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.svg"
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
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescServe    = "Serve a live snapshot of the clock face on localhost"
	FlagDescPort     = "Port used by the snapshot server"
	MsgVersionOutput = "%s version %s (commit %s, built %s) %s/%s\n"
)

// -----------------------------------------------------------------------------
// Timezones & Cadence
// -----------------------------------------------------------------------------

const (
	// PrimaryTimezone drives the primary hour hand and, for every hand,
	// the minute and second values.
	PrimaryTimezone = "Europe/Warsaw"

	// SecondaryTimezone only contributes the hour of the secondary hour hand.
	SecondaryTimezone = "Europe/Athens"

	// TickInterval is the refresh cadence of a mounted clock.
	TickInterval = 1 * time.Second
)

// -----------------------------------------------------------------------------
// Clock Geometry (degrees)
// -----------------------------------------------------------------------------

const (
	FullTurn       = 360.0
	SecondsPerMin  = 60.0
	MinutesPerHour = 60.0
	HoursPerDial   = 12

	// DegreesPerMinuteFraction is the sweep of the minute hand during one minute.
	DegreesPerMinuteFraction = 6.0
	// DegreesPerHourFraction is the sweep of an hour hand during one hour.
	DegreesPerHourFraction = 30.0

	// RenderOffset converts "0° = 12 o'clock" into the rendering convention
	// where 0° points toward 3 o'clock.
	RenderOffset = -90.0

	// RawMidnightHour is returned by some 24-hour formatters for midnight.
	RawMidnightHour = 24
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	WindowWidth  = 420
	WindowHeight = 460

	// MinFaceSize is the smallest square the clock face collapses to.
	MinFaceSize = 120

	// PivotDotRatio is the pivot dot diameter relative to the dial radius.
	PivotDotRatio = 0.08

	// FormatCaption renders "<zone> HH:MM" under the face.
	FormatCaption = "%s %02d:%02d"

	// Preference Keys
	PrefLanguage   = "language"
	PrefServerPort = "server_port"
	PrefLastRun    = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Asset Paths
// -----------------------------------------------------------------------------

const (
	AssetDial          = "assets/dial.svg"
	AssetHourPrimary   = "assets/hour_primary.svg"
	AssetHourSecondary = "assets/hour_secondary.svg"
	AssetMinute        = "assets/minute.svg"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyLblPrimary     = "lbl_primary_zone"
	TKeyLblSecondary   = "lbl_secondary_zone"
	TKeyNotifServerErr = "notif_server_error"
	TKeyPageTitle      = "page_title"
	TKeyMenuLanguage   = "menu_language"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultPort     = "18081"
	DefaultLanguage = "en"

	// DefaultSnapshotSize is the side in pixels of the PNG served over HTTP.
	DefaultSnapshotSize = 400
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "1"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	RouteFace          = "/face.png"
	RouteMetrics       = "/metrics"
	AddrSeparator      = ":"
	MinPort            = 1
	MaxPort            = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderRetryAfter   = "Retry-After"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderIfNoneMatch  = "If-None-Match"

	MimeImagePNG   = "image/png"
	MimeTextHTML   = "text/html; charset=utf-8"
	MimeNoSniff    = "nosniff"
	CacheControlNo = "no-cache"
	FormatETag     = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrTimezoneLookup   = "unknown timezone, falling back to local time"
	ErrTimezoneEmpty    = "empty timezone identifier"
	ErrAssetRead        = "failed to read embedded asset"
	ErrAssetDecode      = "failed to decode SVG asset"
	ErrAssetMissing     = "hand has no asset"
	ErrFaceSize         = "face size must be positive"
	ErrPNGEncode        = "failed to encode face snapshot"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrCompositorInit   = "failed to initialize face compositor"
	ErrHandRender       = "failed to render hand"
	ErrUnknownHand      = "unknown hand type"
	ErrSnapshotPublish  = "failed to publish face snapshot"
	HTTPMsgInitializing = "Clock face initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Messages
// -----------------------------------------------------------------------------

const (
	FallbackPrimaryLabel   = "Warsaw"
	FallbackSecondaryLabel = "Athens"

	MsgPortBusy      = "Port %s is busy or unavailable."
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Face snapshot updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgTickerStart   = "Clock ticker started"
	MsgTickerStop    = "Clock ticker stopped"
	MsgTick          = "Clock tick"
	MsgWindowClosed  = "Clock window closed, releasing ticker"
	MsgAssetLoaded   = "Hand asset rasterized"
	MsgLangDetected  = "Language resolved from system locale"
	MsgLangChanged   = "Language changed"
	MsgLangRejected  = "Unsupported language ignored"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyTimezone  = "timezone"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyLocale    = "locale"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyInterval  = "interval"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyHand      = "hand"
	LogKeyAngles    = "angles"
	LogKeyPrimary   = "primary_hour"
	LogKeySecondary = "secondary_hour"
	LogKeyMinute    = "minute"
	LogKeySecond    = "second"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "build_date"
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
	CompTicker = "ticker"
	CompFace   = "face"
	CompServer = "server"
	CompMain   = "main"
	CompI18n   = "i18n"
)

// -----------------------------------------------------------------------------
// Metrics
// -----------------------------------------------------------------------------

const (
	MetricTicks        = "dualclock_ticks_total"
	MetricTicksHelp    = "The total number of clock ticks rendered"
	MetricFallback     = "dualclock_timezone_fallback_total"
	MetricFallbackHelp = "The total number of timezone lookups that fell back to local time"
	MetricSnapshots    = "dualclock_snapshot_requests_total"
	MetricSnapshotHelp = "The total number of snapshot requests by response code"
	MetricLabelCode    = "code"
	MetricLabelZone    = "timezone"
)
