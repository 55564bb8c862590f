package web

import (
	"html/template"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter собирает gin-движок со страницей и JSON API.
func NewRouter(ctrl *Controller, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = maxImageBytes

	if len(allowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: allowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	r.SetHTMLTemplate(template.Must(template.New("page").Parse(pageTemplate)))
	RegisterRoutes(r, ctrl)
	return r
}

func RegisterRoutes(r *gin.Engine, ctrl *Controller) {
	r.GET("/", ctrl.Page)
	r.POST("/", ctrl.Submit)

	api := r.Group("/api")
	{
		api.GET("/languages", ctrl.Languages)
		api.POST("/explain", ctrl.Explain)
		api.POST("/speech", ctrl.Speech)
		api.POST("/topic-from-image", ctrl.TopicFromImage)
	}
}
