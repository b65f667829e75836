package config

import (
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Eval   string // one-shot statement to parse, empty = interactive
	Tokens bool   // dump the token stream before parsing
	Format string // "sql" (canonical rendering) or "tree" (indented dump)
}

func Parse() *Config {
	cfg := &Config{}
	flag.StringVar(&cfg.Eval, "e", "", "parse the given statement and exit")
	flag.BoolVar(&cfg.Tokens, "tokens", envBool("SQLPARSE_TOKENS", false), "print the token stream before the parse result")
	flag.StringVar(&cfg.Format, "format", envStr("SQLPARSE_FORMAT", "tree"), "output format: tree or sql")
	flag.Parse()
	return cfg
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
