package gmailclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jking7988/Cypressdale-HOA-sub000/internal/config"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/utils"
)

// Client wraps the Gmail API client used as the association's email sender
type Client struct {
	service      *gmail.Service
	userID       string
	sender       string
	ctx          context.Context
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewClient creates a new Gmail client using an existing OAuth token
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, mailCfg config.MailConfig, token *oauth2.Token) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Client{
		service: service,
		userID:  mailCfg.GmailUserID,
		sender:  mailCfg.Sender,
		ctx:     ctx,
	}, nil
}
