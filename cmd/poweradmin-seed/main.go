package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/adfinis/poweradmin-api/internal/api/request"
	"github.com/adfinis/poweradmin-api/internal/config"
	"github.com/adfinis/poweradmin-api/internal/core"
	"github.com/adfinis/poweradmin-api/internal/db"
	"github.com/adfinis/poweradmin-api/internal/model"
)

type fixture struct {
	Domains []domainEntry `yaml:"domains"`
}

type domainEntry struct {
	Name    string        `yaml:"name"`
	Type    string        `yaml:"type"`
	Records []recordEntry `yaml:"records"`
}

type recordEntry struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Content string `yaml:"content"`
	TTL     int    `yaml:"ttl"`
	Prio    int    `yaml:"prio"`
}

func main() {
	file := flag.String("file", "", "YAML file with domains and records (required)")
	owner := flag.Int64("owner", 0, "PowerAdmin user id that will own the seeded domains (required)")
	flag.Parse()

	if *file == "" || *owner <= 0 {
		fmt.Fprintln(os.Stderr, "usage: poweradmin-seed -file zones.yaml -owner <user id>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open fixture: %v\n", err)
		os.Exit(1)
	}
	fx, err := loadFixture(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	fmt.Println("Seeding PowerDNS database...")
	svc := core.NewServices(pool, cfg.JWTSecret, cfg.JWTIssuer)
	if failed := seed(ctx, svc, *owner, fx, os.Stdout); failed > 0 {
		fmt.Fprintf(os.Stderr, "%d entries failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("Done.")
}

func loadFixture(r io.Reader) (*fixture, error) {
	var fx fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &fx, nil
}

// seed drives every entry through the same services the API uses, so seeded
// data obeys the ownership rules. Existing domains are skipped; their records
// are still attempted and fail unless owner already owns the domain. It
// returns the number of failed entries.
func seed(ctx context.Context, svc *core.Services, owner int64, fx *fixture, out io.Writer) int {
	failed := 0
	for _, de := range fx.Domains {
		de.Name = request.NormalizeName(de.Name)
		d := &model.Domain{Name: de.Name, Type: de.Type}
		err := svc.Domain.Create(ctx, owner, d)
		var verr *core.ValidationError
		switch {
		case err == nil:
			fmt.Fprintf(out, "  domain %s created\n", d.Name)
		case errors.As(err, &verr) && verr.Field == "name" && de.Name != "":
			fmt.Fprintf(out, "  domain %s exists, skipping\n", de.Name)
		default:
			fmt.Fprintf(out, "  domain %s: %v\n", de.Name, err)
			failed++
			continue
		}

		for _, re := range de.Records {
			if err := request.ValidateRecord(de.Name, re.Type, re.Name, re.Content); err != nil {
				fmt.Fprintf(out, "    record %s %s: %v\n", re.Name, re.Type, err)
				failed++
				continue
			}
			rec := &model.Record{
				Domain:  de.Name,
				Name:    request.NormalizeName(re.Name),
				Type:    re.Type,
				Content: re.Content,
				TTL:     re.TTL,
				Prio:    re.Prio,
			}
			if err := svc.Record.Create(ctx, owner, rec); err != nil {
				fmt.Fprintf(out, "    record %s %s: %v\n", re.Name, re.Type, err)
				failed++
				continue
			}
			fmt.Fprintf(out, "    record %s %s created (id %d)\n", rec.Name, rec.Type, rec.ID)
		}
	}
	return failed
}
