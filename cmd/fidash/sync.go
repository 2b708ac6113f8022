package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rgehrsitz/fidash/internal/config"
	"github.com/rgehrsitz/fidash/internal/logging"
	"github.com/rgehrsitz/fidash/internal/state"
	"github.com/rgehrsitz/fidash/internal/storage"
)

const (
	envMongoURI      = "FIDASH_MONGO_URI"
	envUserID        = "FIDASH_USER_ID"
	envMongoDatabase = "FIDASH_MONGO_DB"

	defaultDatabase = "fidash"
	connectTimeout  = 10 * time.Second
)

var errRemoteNotConfigured = errors.New(envMongoURI + " and " + envUserID + " must be set")

// remoteSession is an open connection to the user's remote document
type remoteSession struct {
	client *mongo.Client
	repo   *storage.MongoRepository
	userID string
	sync   *state.Syncer
}

// connectRemote opens the remote store named by the environment. It returns
// nil without error when no remote is configured.
func connectRemote(ctx context.Context, log *logging.Logger) (*remoteSession, error) {
	uri := os.Getenv(envMongoURI)
	userID := os.Getenv(envUserID)
	if uri == "" || userID == "" {
		return nil, nil
	}
	database := os.Getenv(envMongoDatabase)
	if database == "" {
		database = defaultDatabase
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := storage.ConnectToMongoDB(connectCtx, uri, log.With("mongo"))
	if err != nil {
		return nil, err
	}
	return &remoteSession{
		client: client,
		repo:   storage.NewMongoRepository(storage.NewMongoProvider(client, database)),
		userID: userID,
	}, nil
}

func (r *remoteSession) syncer(store *state.Store, log *logging.Logger) *state.Syncer {
	if r.sync == nil {
		r.sync = state.NewSyncer(store, r.repo, r.userID, 0)
		r.sync.SetLogger(log.With("sync"))
	}
	return r.sync
}

func (r *remoteSession) Close() {
	_ = r.client.Disconnect(context.Background())
}

func syncCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Exchange the state file with the remote store",
		Long: fmt.Sprintf(`Copy the portfolio between the local state file and MongoDB.

The remote store is configured with %s, %s and optionally %s
(default %q).`, envMongoURI, envUserID, envMongoDatabase, defaultDatabase),
	}

	pull := &cobra.Command{
		Use:   "pull",
		Short: "Replace the state file with the remote copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withRemote(cmd, func(r *remoteSession, store *state.Store) error {
				if err := r.syncer(store, opts.logger(cmd)).Pull(cmd.Context()); err != nil {
					return err
				}
				p := store.Portfolio()
				if err := config.NewInputParser().SaveToFile(opts.file, &p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d assets into %s\n", len(p.Assets), opts.file)
				return nil
			})
		},
	}

	push := &cobra.Command{
		Use:   "push",
		Short: "Overwrite the remote copy with the state file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withRemote(cmd, func(r *remoteSession, store *state.Store) error {
				if err := r.syncer(store, opts.logger(cmd)).Push(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s for user %s\n", opts.file, r.userID)
				return nil
			})
		},
	}

	cmd.AddCommand(pull, push)
	return cmd
}

// withRemote loads the state file and connects to the remote store, failing
// when none is configured.
func (o *globalOptions) withRemote(cmd *cobra.Command, fn func(*remoteSession, *state.Store) error) error {
	p, err := o.load(cmd)
	if err != nil {
		return err
	}
	log := o.logger(cmd)
	remote, err := connectRemote(cmd.Context(), log)
	if err != nil {
		return err
	}
	if remote == nil {
		return errRemoteNotConfigured
	}
	defer remote.Close()

	store := state.NewStore(*p)
	store.SetLogger(log.With("store"))
	return fn(remote, store)
}
