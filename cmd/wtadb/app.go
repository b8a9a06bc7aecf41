package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matchpoint-labs/wtadb/internal/config"
	"github.com/matchpoint-labs/wtadb/internal/database"
	"github.com/matchpoint-labs/wtadb/internal/metrics"
	"github.com/matchpoint-labs/wtadb/internal/notifier"
	"github.com/matchpoint-labs/wtadb/internal/notifier/slack"
	"github.com/matchpoint-labs/wtadb/internal/pubsub"
	"github.com/matchpoint-labs/wtadb/internal/session"
	"github.com/matchpoint-labs/wtadb/internal/tour"
	"github.com/matchpoint-labs/wtadb/internal/validate"
)

// app holds the wired collaborators for one command invocation.
type app struct {
	db  *sql.DB
	svc *tour.Service
}

// setup loads configuration, connects with the requested role, authenticates
// the operator and wires the service. The returned teardown closes the
// connection.
func setup(requireAdmin bool) (*app, func(), error) {
	start := time.Now()
	cfg := config.Load()

	r := database.Role(role)
	if r != database.RoleAdmin && r != database.RoleUser {
		return nil, nil, fmt.Errorf("unknown role %q (want admin or user)", role)
	}
	if requireAdmin && r != database.RoleAdmin {
		return nil, nil, fmt.Errorf("this command mutates the database; connect with --role admin")
	}

	db, teardown, err := database.Connect(r, cfg)
	if err != nil {
		return nil, nil, err
	}

	var ps pubsub.PubSubClient = pubsub.Nop{}
	if cfg.PubSub.ProjectID != "" {
		ps = pubsub.New(cfg.PubSub.ProjectID)
	}
	var n notifier.Notifier = notifier.Nop{}
	if cfg.Slack.Token != "" {
		n = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID)
	}

	username, password, err := promptCredentials()
	if err != nil {
		teardown()
		return nil, nil, err
	}
	res, err := session.NewService(db, ps).Login(context.Background(), r, username, password)
	if err != nil {
		teardown()
		return nil, nil, err
	}
	if res.State == session.StateRegistered {
		fmt.Println("Welcome! Your account has been created.")
	}

	m := metrics.NewService()
	m.SetStartupTime(time.Since(start).Seconds())

	svc := tour.NewService(tour.New(db), validate.NewChecker(db), m, metrics.NewStore(db), n, ps, dryRun)
	log.Debug("Session ready", "role", r, "user", res.UserID)
	return &app{db: db, svc: svc}, teardown, nil
}
