package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/internal/config"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/clients/cmsclient"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/clients/gmailclient"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/db"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg         *config.Config
	OAuthCfg    *config.OAuthClientConfig
	Content     cmsclient.ContentStore
	GmailClient *gmailclient.Client
	Database    *postgres.DB
	Newsletter  db.SubscriberStore
	Trash       db.SubscriberStore
	Runs        db.RunLogStore
	Location    *time.Location
	Logger      *zap.Logger
	Ctx         context.Context
}
