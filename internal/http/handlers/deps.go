package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/config"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/ingest"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler     *AuthHandler
	ItemHandler     *ItemHandler
	CategoryHandler *CategoryHandler
	AdminHandler    *AdminHandler
	SellListHandler *SellListHandler
	ContactHandler  *ContactHandler
	PageHandler     *PageHandler
}

// NewDeps wires services and handlers over one shared pool. notify may be
// nil, in which case quotes are stored without a notification.
func NewDeps(db *sqlx.DB, cfg config.Config, notify services.QuoteNotifier) *Deps {
	itemRepo := repos.NewItemRepo(db)

	authSvc := services.NewAuthService(repos.NewAdminRepo(db), cfg.AuthSecret)
	catalogSvc := services.NewCatalogService(db)
	sellSvc := services.NewSellListService(repos.NewSellListRepo(db), itemRepo)
	quoteSvc := services.NewQuoteService(repos.NewQuoteRepo(db), sellSvc, notify)

	return &Deps{
		Auth:            authSvc,
		AuthHandler:     &AuthHandler{Auth: authSvc, Secure: cfg.IsProduction()},
		ItemHandler:     &ItemHandler{Catalog: catalogSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		AdminHandler: &AdminHandler{
			Importer:    ingest.NewImporter(db),
			Replacer:    ingest.NewReplacer(db),
			Maintenance: services.NewMaintenanceService(db),
			Quotes:      quoteSvc,
			CSVDir:      cfg.CSVDir,
		},
		SellListHandler: &SellListHandler{SellList: sellSvc},
		ContactHandler:  &ContactHandler{Quotes: quoteSvc},
		PageHandler:     &PageHandler{Catalog: catalogSvc},
	}
}
