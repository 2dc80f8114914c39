package core

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/siahsang/conduit/internal/utils/databaseutils"
)

type Core struct {
	log         *slog.Logger
	db          *sql.DB
	session     databaseutils.Session
	sqlTemplate *databaseutils.SQLTemplate

	now        func() time.Time
	slugSuffix func() string
}

func NewCore(dbConn *sql.DB, log *slog.Logger, sqlTemplate *databaseutils.SQLTemplate) *Core {
	return &Core{
		log:         log,
		db:          dbConn,
		session:     databaseutils.NewSession(dbConn, log),
		sqlTemplate: sqlTemplate,
		now:         func() time.Time { return time.Now().UTC() },
		slugSuffix:  randomSlugSuffix,
	}
}
