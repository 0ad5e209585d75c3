package internal

import (
	"net/http"

	"chantd/internal/controllers"
	"chantd/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/count", http.HandlerFunc(apiController.ReceiveCount))
	routers.Get("/summary", http.HandlerFunc(apiController.GetSummary))
	routers.Get("/streak", http.HandlerFunc(apiController.GetStreak))
	routers.Get("/history", http.HandlerFunc(apiController.GetHistory))
	routers.Get("/achievements", http.HandlerFunc(apiController.GetAchievements))
	routers.Get("/time", http.HandlerFunc(apiController.GetTimeStats))
	routers.Post("/activity", http.HandlerFunc(apiController.SetActivity))
	routers.Get("/settings", http.HandlerFunc(apiController.GetSetting))
	routers.Post("/settings", http.HandlerFunc(apiController.SetSetting))
	routers.Post("/reset", http.HandlerFunc(apiController.Reset))
	routers.Post("/audio", http.HandlerFunc(apiController.UploadAudio))
	routers.Get("/audio", http.HandlerFunc(apiController.GetAudio))
	routers.Delete("/audio", http.HandlerFunc(apiController.DeleteAudio))
	return routers
}
