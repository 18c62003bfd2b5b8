package cli

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"visacheck/internal/platform/config"
	"visacheck/internal/platform/logger"
	"visacheck/internal/visa/domain/identity"
	"visacheck/internal/visa/domain/shared"
	"visacheck/internal/visa/service"
	"visacheck/pkg/requestcontext"
)

type checkOptions struct {
	civilID     string
	passport    string
	nationality string
	visaType    string
	asOf        string
	issued      string
	expires     string
	seed        uint64
	output      string
	timezone    string
	regulated   bool
	verbose     bool
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the validity of a visa",
		Long: "Validate a civil ID (12 digits) or a passport number with its country of issue " +
			"and report the visa status. Without --issued/--expires a demonstration window is generated.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.civilID, "civil-id", "", "12-digit Kuwait civil ID")
	cmd.Flags().StringVar(&opts.passport, "passport", "", "Passport number (6-12 letters or digits)")
	cmd.Flags().StringVar(&opts.nationality, "nationality", "", "Passport country of issue (see 'visacheck countries')")
	cmd.Flags().StringVar(&opts.visaType, "visa-type", string(shared.CategoryWork), "Visa type (see 'visacheck categories')")
	cmd.Flags().StringVar(&opts.asOf, "as-of", "", "Reference date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&opts.issued, "issued", "", "Visa issue date YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.expires, "expires", "", "Visa expiry date YYYY-MM-DD")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for the demonstration window (0 = random)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "Asia/Kuwait", "Zone whose calendar defines today")
	cmd.Flags().BoolVar(&opts.regulated, "regulated", false, "Mask the echoed identifier")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log to stderr")
	cmd.MarkFlagsMutuallyExclusive("civil-id", "passport")
	cmd.MarkFlagsOneRequired("civil-id", "passport")

	return cmd
}

func runCheck(cmd *cobra.Command, opts checkOptions) error {
	format := strings.ToLower(opts.output)
	if format != "text" && format != "json" && format != "yaml" {
		return fmt.Errorf("unknown output format %q: use text, json or yaml", opts.output)
	}

	req, err := opts.request()
	if err != nil {
		return err
	}

	logLevel := slog.LevelWarn
	if opts.verbose {
		logLevel = slog.LevelDebug
	}
	loc := config.Server{TimeZone: opts.timezone}.Location()
	svcOpts := []service.Option{
		service.WithLogger(logger.NewWithWriter(cmd.ErrOrStderr(), config.Log{Level: logLevel, Format: "text"})),
		service.WithLocation(loc),
		service.WithRegulatedMode(opts.regulated),
	}
	if opts.seed != 0 {
		svcOpts = append(svcOpts, service.WithRandom(rand.New(rand.NewPCG(opts.seed, opts.seed))))
	}

	ctx := cmd.Context()
	if opts.asOf != "" {
		asOf, err := shared.ParseDate(opts.asOf)
		if err != nil {
			return fmt.Errorf("--as-of: %w", err)
		}
		y, m, d := asOf.Time().Date()
		ctx = requestcontext.WithTime(ctx, time.Date(y, m, d, 12, 0, 0, 0, loc))
	}

	result, err := service.New(svcOpts...).Check(ctx, req)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), format, newReport(result))
}

func (o checkOptions) request() (service.CheckRequest, error) {
	var req service.CheckRequest
	if o.passport != "" {
		country, ok := shared.ParseCountry(o.nationality)
		if !ok {
			country = shared.Country(strings.TrimSpace(o.nationality))
		}
		req.Identifier = identity.TravelDocument(strings.TrimSpace(o.passport), country)
	} else {
		req.Identifier = identity.NationalID(strings.TrimSpace(o.civilID))
	}

	category, err := shared.ParseCategory(o.visaType)
	if err != nil {
		return req, fmt.Errorf("--visa-type %q: %w", o.visaType, err)
	}
	req.Category = category

	if o.issued != "" {
		d, err := shared.ParseDate(o.issued)
		if err != nil {
			return req, fmt.Errorf("--issued: %w", err)
		}
		req.IssueDate = &d
	}
	if o.expires != "" {
		d, err := shared.ParseDate(o.expires)
		if err != nil {
			return req, fmt.Errorf("--expires: %w", err)
		}
		req.ExpiryDate = &d
	}
	return req, nil
}
