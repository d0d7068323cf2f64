// Command set-role changes the stored role of a registered user.
// Usage: go run ./cmd/set-role -email alice@example.com -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/smartfit/smartfit-api/internal/config"
	"github.com/smartfit/smartfit-api/internal/models"
	"github.com/smartfit/smartfit-api/internal/store"
)

func main() {
	email := flag.String("email", "", "email of the user to update")
	role := flag.String("role", "", "new role: user, admin or trainer")
	flag.Parse()

	want := models.Role(*role)
	if *email == "" || !want.Valid() {
		fmt.Fprintln(os.Stderr, "usage: set-role -email <email> -role <user|admin|trainer>")
		os.Exit(1)
	}

	config.LoadDotEnv()
	cfg := config.Load()
	if cfg.MongoURI == "" {
		fmt.Fprintln(os.Stderr, "MONGO_URI (or DB_USER/DB_PASS) is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
	defer cancel()

	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	users := store.NewUserStore(client.Database(cfg.MongoDatabase).Collection(store.UsersCollection), cfg.DBTimeout)
	res, err := users.UpdateRoleByEmail(ctx, *email, want)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error updating role: %v\n", err)
		os.Exit(1)
	}
	if res.MatchedCount == 0 {
		fmt.Fprintf(os.Stderr, "No user registered with email %s\n", *email)
		os.Exit(1)
	}

	fmt.Printf("Role of %s set to %s\n", *email, want)
}
