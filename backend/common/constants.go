package common

import (
	"flag"
	"sync"
	"time"

	"github.com/google/uuid"
)

var Version = "v0.1.0"
var StartTime = time.Now().Unix()

// SystemName is reported by the status endpoint.
var SystemName = "Chatspace"

var (
	Port          = flag.Int("port", 3000, "the listening port")
	PrintVersion  = flag.Bool("version", false, "print version and exit")
	PrintHelpFlag = flag.Bool("help", false, "print help and exit")
	LogDir        = flag.String("log-dir", "", "specify the log directory")
)

// SQLitePath is where the sqlite database lives. Overridden by config file
// or the SQLITE_PATH environment variable.
var SQLitePath = "data/chatspace.db"

var (
	SessionSecret    = uuid.New().String()
	JWTSecret        = uuid.New().String()
	JWTRefreshSecret = ""
)

// FrontendURL is the allowed CORS origin of the web client.
var FrontendURL = "http://localhost:3001"

var EnableGzip = flag.Bool("gzip", true, "enable gzip compression for responses")

var (
	RedisEnabled = false
)

// Role constants
const (
	RoleGuestUser  = 0
	RoleCommonUser = 1
	RoleAdminUser  = 10
	RoleRootUser   = 100
)

// User status constants
const (
	UserStatusEnabled  = 1
	UserStatusDisabled = 2
)

// ItemsPerPage is the page size of admin listings.
const ItemsPerPage = 10

// Rate limit knobs. Critical endpoints (login, register, setup) get the
// tighter bucket.
var (
	GlobalApiRateLimitNum      = 480
	GlobalApiRateLimitDuration = 3 * time.Minute

	CriticalRateLimitNum      = 20
	CriticalRateLimitDuration = 20 * time.Minute
)

var OptionMapRWMutex sync.RWMutex

func PrintHelp() {
	println("Chatspace " + Version)
	println("Usage: chatspace [--port <port>] [--log-dir <log dir>] [--version] [--help]")
}
