package main

import (
	"strings"

	"valentine/config"
	"valentine/db"
	"valentine/handlers"
	"valentine/logging"
	"valentine/models"

	"github.com/gin-gonic/autotls"
	"go.uber.org/zap"
)

func main() {
	config.Init()
	if err := logging.Init(config.DEBUG_MODE); err != nil {
		panic(err)
	}
	defer logging.Sync()

	database, err := db.Open(config.MYSQL_DSN, config.SQLITE_FILE)
	if err != nil {
		logging.Log.Fatal("Cannot open database", zap.Error(err))
	}
	if err = models.Migrate(database); err != nil {
		logging.Log.Fatal("Auto-migrate failed", zap.Error(err))
	}
	store := models.NewInvitationStore(database, models.NewInvitationCache(config.CACHE_MAX_ENTRIES))
	router := newRouter(&handlers.Invitations{
		Store:      store,
		MaxPhotoMB: config.MAX_PHOTO_MB,
	}, config.DEBUG_MODE, config.VIEW_CACHE_SECONDS)

	if config.TLS_DOMAINS != "" {
		logging.Log.Info("Starting with autotls", zap.String("domains", config.TLS_DOMAINS))
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		logging.Log.Info("Starting", zap.String("address", config.BIND_ADDRESS))
		err = router.Run(config.BIND_ADDRESS)
	}
	logging.Log.Fatal("Server stopped", zap.Error(err))
}
