package main

import (
	"time"

	"valentine/handlers"
	"valentine/utils"
	"valentine/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Multipart bodies above this are spooled to temporary files by net/http
const maxMultipartMemory = 8 << 20

func newRouter(invitations *handlers.Invitations, debug bool, viewCacheSeconds int) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.AccessLogMiddleware)
	_ = router.SetTrustedProxies([]string{})
	router.MaxMultipartMemory = maxMultipartMemory
	if debug {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Origin"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        30 * 24 * time.Hour,
	}))
	if !debug {
		router.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	web.LoadTemplates(router)

	noCache := (&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()
	pages := &web.Pages{Invitations: invitations}

	router.GET("/", noCache, pages.Index)
	router.POST("/create", noCache, pages.Create)
	// Invitations never change once created
	router.GET("/view/:id", (&utils.CacheRouter{CacheTime: viewCacheSeconds}).Handler(), pages.View)
	router.GET("/health", noCache, handlers.Health)
	router.GET("/robots.txt", web.DisallowRobots)

	api := router.Group("/api", noCache)
	api.POST("/invitations", invitations.APICreate)
	api.GET("/invitations/:id", invitations.APIGet)

	return router
}
