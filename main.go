package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"chatspace/backend/api/route"
	"chatspace/backend/common"
	"chatspace/backend/common/i18n"
	"chatspace/backend/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	sessionredis "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	flag.Parse()

	if *common.PrintVersion {
		fmt.Println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}

	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	common.SetupGinLog()
	common.SysLog("Chatspace " + common.Version + " started")

	if err := common.LoadConfigFile(); err != nil {
		common.FatalLog(err)
	}
	if err := i18n.Init("locales"); err != nil {
		common.SysError("failed to load locales: " + err.Error())
	}

	common.InitRedisClient()

	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.FatalLog(err)
		}
	}()

	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[GIN] %s | %d | %s | %s | %s %s\n",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.StatusCode,
			param.Latency,
			param.ClientIP,
			param.Method,
			param.Path,
		)
	}))

	var store sessions.Store
	if common.RedisEnabled {
		opt := common.ParseRedisOption()
		redisStore, err := sessionredis.NewStore(10, "tcp", opt.Addr, opt.Username, opt.Password, []byte(common.SessionSecret))
		if err != nil {
			common.FatalLog(err)
		}
		store = redisStore
	} else {
		store = cookie.NewStore([]byte(common.SessionSecret))
	}
	server.Use(sessions.Sessions("session", store))

	route.SetRouter(server)

	addr := ":" + strconv.Itoa(*common.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server,
	}

	go func() {
		common.SysLog("listening on " + addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.FatalLog(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	common.SysLog("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		common.SysError("forced shutdown: " + err.Error())
	}
	common.SysLog("server exited")
}
