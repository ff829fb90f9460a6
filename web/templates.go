package web

import (
	"embed"
	"html/template"

	"valentine/models"
	"valentine/processing"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	// photoURL lets a stored data URL through html/template's URL filter,
	// which would otherwise replace data: URLs with #ZgotmplZ
	"photoURL": func(photo *string) template.URL {
		if photo == nil || !processing.IsDataURL(*photo) {
			return ""
		}
		return template.URL(*photo)
	},
	"themeClass": func(theme string) string {
		if models.IsKnownTheme(theme) {
			return "theme-" + theme
		}
		return "theme-" + models.DefaultTheme
	},
}

// LoadTemplates installs the embedded page templates on the router
func LoadTemplates(router *gin.Engine) {
	t := template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl"))
	router.SetHTMLTemplate(t)
}
