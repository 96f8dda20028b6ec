package FiberConfig

import (
	"Compass/Briefing"
	"Compass/Controllers"
	"Compass/Excel"
	"Compass/Gemini"
	"Compass/Store"
	"Compass/middleware"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// allowedOrigins builds the CORS allow-list: the local dev origins plus
// anything configured through the environment.
func allowedOrigins() string {
	origins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if extra := os.Getenv("FRONTEND_URL"); extra != "" {
		origins = append(origins, extra)
	}
	if list := os.Getenv("ALLOWED_ORIGINS"); list != "" {
		for _, origin := range strings.Split(list, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}
	return strings.Join(origins, ",")
}

// SetupRoutes wires every handler group onto the app.
func SetupRoutes(app *fiber.App, primary Store.Store, fallback *Store.MemoryStore, generator *Gemini.Client) {
	taskController := Controllers.NewTaskController(primary, fallback, generator)
	scheduleController := Controllers.NewScheduleController(primary, fallback, Excel.NewProcessor(generator))
	memoController := Controllers.NewMemoController(primary, fallback)
	briefingController := Controllers.NewBriefingController(Briefing.NewAssembler(generator, primary, fallback))
	healthController := Controllers.NewHealthController(generator, primary)

	app.Get("/", Controllers.Root)
	app.Get("/health", healthController.Health)

	tasks := app.Group("/tasks")
	tasks.Get("/", taskController.GetTasks)
	tasks.Post("/", taskController.CreateTask)
	tasks.Post("/analyze", taskController.AnalyzeTask)
	tasks.Patch("/:id", taskController.UpdateTask)

	schedule := app.Group("/schedule")
	schedule.Get("/", scheduleController.GetEvents)
	schedule.Post("/upload", scheduleController.UploadSchedule)
	schedule.Delete("/:event_id", scheduleController.DeleteEvent)

	memos := app.Group("/memos")
	memos.Get("/", memoController.GetMemos)
	memos.Post("/", memoController.SaveMemos)

	app.Get("/briefing", briefingController.GetBriefing)

	app.Get("/logs", Controllers.GetLogs)
	app.Get("/logs/stats", Controllers.GetLogStats)
}

// FiberConfig builds the app with its middleware stack and routes. The
// caller listens.
func FiberConfig(primary Store.Store, fallback *Store.MemoryStore, generator *Gemini.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Compass Dashboard API",
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))
	app.Use(middleware.UserContext())

	SetupRoutes(app, primary, fallback, generator)
	return app
}
