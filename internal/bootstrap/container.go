package bootstrap

import (
	"time"

	"assessform-client/internal/config"
	"assessform-client/internal/pkg/logger"
	"assessform-client/internal/repository/memory"
	"assessform-client/internal/service"
	"assessform-client/pkg/formsapi"
	"assessform-client/pkg/upload"
)

// Container wires the synchronization engine: one transport client, the
// company snapshot cache, the session controller, the response store and the
// tiered upload orchestrator.
type Container struct {
	Logger logger.ILogger
	Client formsapi.Client

	CompanyStatusService service.ICompanyStatusService
	SessionService       service.ISessionService
	ResponseService      service.IResponseService
	FormService          service.IFormService
	Uploader             *upload.Orchestrator
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	client := formsapi.NewHTTPClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)

	// 2. Repositories
	statusRepo := memory.NewCompanyStatusRepository()

	// 3. Services
	statusService := service.NewCompanyStatusService(client, statusRepo, sysLogger)
	sessionService := service.NewSessionService(client, statusService, sysLogger)
	responseService := service.NewResponseService(client, sessionService, statusService, sysLogger)
	sessionService.SetResponseStore(responseService)
	formService := service.NewFormService(client, sessionService, responseService, sysLogger)

	// 4. Upload chain: secure, then legacy, then the local tier that always
	// terminates the chain. Uploads share the session readiness gate with
	// response saves.
	uploader := upload.NewOrchestrator(
		sysLogger,
		sessionService,
		upload.NewSecureStrategy(client),
		upload.NewLegacyStrategy(client),
		upload.NewLocalStrategy(cfg.Upload.LocalDir),
	)

	return &Container{
		Logger:               sysLogger,
		Client:               client,
		CompanyStatusService: statusService,
		SessionService:       sessionService,
		ResponseService:      responseService,
		FormService:          formService,
		Uploader:             uploader,
	}
}
