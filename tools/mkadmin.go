// mkadmin bootstraps the first super-admin account straight into the
// database, bypassing the role gate that otherwise requires an existing
// super-admin to assign roles.
//
// usage: DB_DSN=postgres://... go run tools/mkadmin.go <email> <password>
package main

import (
	"context"
	"fmt"
	"os"

	"backoffice/internal/auth"
	"backoffice/internal/domain/user"
	"backoffice/internal/store/postgres"
	"backoffice/internal/validate"

	"github.com/google/uuid"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Println("usage: go run tools/mkadmin.go <email> <password>")
		os.Exit(1)
	}
	email, password := os.Args[1], os.Args[2]

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		fmt.Println("DB_DSN is not set")
		os.Exit(1)
	}
	if !validate.Password(password) {
		fmt.Println("password too weak: need 8+ chars with lower, upper, digit and symbol")
		os.Exit(1)
	}

	ctx := context.Background()
	pool := postgres.MustOpen(ctx, dsn)
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		fmt.Println("schema migration failed:", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Println("hash failed:", err)
		os.Exit(1)
	}
	u, err := user.New(uuid.NewString(), email,
		hash, user.Profile{FirstName: "Super", LastName: "Admin"},
		[]string{user.RoleSuperAdmin})
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := postgres.NewStore(pool).Users().Insert(ctx, u); err != nil {
		fmt.Println("insert failed:", err)
		os.Exit(1)
	}
	fmt.Println("created super-admin", u.ID)
}
