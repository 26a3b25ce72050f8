package config

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultRecordsFile = "bank_users.db"
const defaultBranchFile = "ifsc_codes.db"
const defaultListenAddr = ":3000"
const defaultChannelID = "BankWeb"
const defaultChannelKey = "DiddyKey001"

type Config struct {
	// RecordsFile and BranchFile back the flat-file stores. RecordsFile is
	// ignored when DatabaseDSN selects the Postgres backend.
	RecordsFile   string
	BranchFile    string
	DatabaseDSN   string
	MigrationsDir string
	ListenAddr    string
	ChannelID     string
	ChannelKey    string
}

func Load() (Config, error) {
	recordsFile := strings.TrimSpace(os.Getenv("RECORDS_FILE"))
	if recordsFile == "" {
		recordsFile = defaultRecordsFile
	}

	branchFile := strings.TrimSpace(os.Getenv("BRANCH_FILE"))
	if branchFile == "" {
		branchFile = defaultBranchFile
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	channelID := strings.TrimSpace(os.Getenv("CHANNEL_ID"))
	if channelID == "" {
		channelID = defaultChannelID
	}

	channelKey := strings.TrimSpace(os.Getenv("CHANNEL_KEY"))
	if channelKey == "" {
		channelKey = defaultChannelKey
	}

	cfg := Config{
		RecordsFile:   recordsFile,
		BranchFile:    branchFile,
		MigrationsDir: filepath.Join("src", "migrations"),
		ListenAddr:    listenAddr,
		ChannelID:     channelID,
		ChannelKey:    channelKey,
	}

	// An empty DSN selects the flat-file backend.
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_DSN")); dsn != "" {
		cfg.DatabaseDSN = normalizeConnectionString(dsn)
	}

	return cfg, nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
