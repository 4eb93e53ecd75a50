package config

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// Firebase holds the initialized Firebase app and the clients built from it.
type Firebase struct {
	App       *firebase.App
	Auth      *auth.Client
	Firestore *firestore.Client
}

// NewFirebase initializes the Firebase app. Credentials come from
// credentialsFile when set, otherwise from application default credentials.
// The Firestore client is only opened when withFirestore is true.
func NewFirebase(ctx context.Context, cfg *Config, withFirestore bool, logger *logrus.Logger) (*Firebase, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentials))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth: %w", err)
	}

	fb := &Firebase{App: app, Auth: authClient}
	if withFirestore {
		if fb.Firestore, err = app.Firestore(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize firestore: %w", err)
		}
	}

	logger.WithField("project", cfg.FirebaseProjectID).Info("Firebase initialized successfully")
	return fb, nil
}

// Close closes the Firestore client if one was opened.
func (f *Firebase) Close() error {
	if f.Firestore != nil {
		return f.Firestore.Close()
	}
	return nil
}
