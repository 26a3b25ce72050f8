package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/bankofdiddy/account-registry/src/internal/adapter/http/models"
	"github.com/bankofdiddy/account-registry/src/internal/adapter/repository/flatfile"
	"github.com/bankofdiddy/account-registry/src/internal/adapter/repository/postgres"
	"github.com/bankofdiddy/account-registry/src/internal/config"
	"github.com/bankofdiddy/account-registry/src/internal/domain"
	"github.com/bankofdiddy/account-registry/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

const usage = `usage: bankdb <operation> [arguments]

operations:
  register <accountNumber> <ifscCode> <fullName> <email> <username> <password>
  login <username> <password>
  list
  set-balance <username> <amount>
`

// Exit codes reflect argument-shape validity, not business outcome:
// a rejected registration still exits 0 after printing its message.
func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bankdb: load config: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var store domain.RecordStore
	if cfg.DatabaseDSN != "" {
		if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
			fmt.Fprintf(os.Stderr, "bankdb: run migrations: %v\n", err)
			return 1
		}
		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bankdb: open postgres: %v\n", err)
			return 1
		}
		defer db.Close()
		store = postgres.NewRecordStore(db)
	} else {
		store = flatfile.NewRecordStore(cfg.RecordsFile)
	}

	branchRepo, err := flatfile.NewBranchRepository(cfg.BranchFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bankdb: bootstrap branch directory: %v\n", err)
		return 1
	}

	svc, err := services.NewRegistryService(ctx, store, branchRepo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bankdb: initialize registry: %v\n", err)
		return 1
	}

	switch args[0] {
	case "register":
		if len(args) != 7 {
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		result, err := svc.Register(ctx, models.SignupRequest{
			AccountNumber: args[1],
			IFSCCode:      args[2],
			FullName:      args[3],
			Email:         args[4],
			Username:      args[5],
			Password:      args[6],
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "bankdb: %v\n", err)
			return 1
		}
		fmt.Println(result.Message())
		return 0

	case "login":
		if len(args) != 3 {
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		fmt.Println(svc.Authenticate(ctx, args[1], args[2]).Message())
		return 0

	case "list":
		if len(args) != 1 {
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		listUsers(svc.Users(ctx))
		return 0

	case "set-balance":
		if len(args) != 3 {
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		balance, err := decimal.NewFromString(args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "bankdb: invalid amount %q\n", args[2])
			return 2
		}
		if err := svc.UpdateBalance(ctx, args[1], balance); err != nil {
			fmt.Fprintf(os.Stderr, "bankdb: %v\n", err)
			return 1
		}
		fmt.Println("Balance updated successfully!")
		return 0

	default:
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
}

func listUsers(records []domain.UserRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT NO\tIFSC\tFULL NAME\tEMAIL\tUSERNAME\tBALANCE\tACTIVE")
	for _, record := range records {
		active := "No"
		if record.IsActive {
			active = "Yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			record.AccountNumber,
			record.IFSCCode,
			record.FullName,
			record.Email,
			record.Username,
			record.Balance.StringFixed(2),
			active,
		)
	}
	w.Flush()
	fmt.Printf("\nTotal Users: %d\n", len(records))
}
