// Command plancli talks to the plan service directly: it creates, shows,
// exports and deletes the training plan of one athlete.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/fortranov/sportproject/internal/export"
	"github.com/fortranov/sportproject/internal/logging"
	"github.com/fortranov/sportproject/internal/planservice"
	"github.com/fortranov/sportproject/internal/planview"
	"github.com/fortranov/sportproject/internal/training"
)

const usage = `usage: plancli <create | view | export | delete | tiers> [flags]

env:
  PLAN_SERVICE_URL  plan service base url (default http://localhost:8000)
  PLANCLI_LOG_LEVEL log level (default warn)`

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %s\n", err)
	}

	logLevel := os.Getenv("PLANCLI_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}
	logging.Setup(logging.LoggerSetupParams{
		LogLevel:    logLevel,
		Console:     os.Stderr,
		Environment: "cli",
	})

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	baseURL := os.Getenv("PLAN_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	client := planservice.NewClient(baseURL, planservice.NewHTTPClient(10*time.Second), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "create":
		err = runCreate(ctx, client, args)
	case "view":
		err = runView(ctx, client, args)
	case "export":
		err = runExport(ctx, client, args)
	case "delete":
		err = runDelete(ctx, client, args)
	case "tiers":
		err = runTiers()
	default:
		fmt.Println(usage)
		os.Exit(2)
	}

	if err != nil {
		log.Debugf("%s failed: %+v", os.Args[1], err)
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

func runCreate(ctx context.Context, client *planservice.Client, args []string) error {
	flags := flag.NewFlagSet("create", flag.ExitOnError)
	uin := flags.String("uin", "", "athlete UIN")
	date := flags.String("date", "", "competition date, YYYY-MM-DD")
	difficulty := flags.Int("difficulty", training.DefaultDifficulty, "difficulty score [0, 1000]")
	level := flags.String("level", "", "difficulty level preset (beginner | intermediate | advanced), overrides -difficulty")
	if err := flags.Parse(args); err != nil {
		return err
	}

	req := training.CreatePlanRequest{
		UIN:        strings.TrimSpace(*uin),
		Difficulty: *difficulty,
	}
	if *date != "" {
		competitionDate, err := training.ParseDate(*date)
		if err != nil {
			return &training.ValidationError{Field: "competition_date", Reason: err.Error()}
		}
		req.CompetitionDate = competitionDate
	}
	if *level != "" {
		tier, err := training.ParseDifficultyTier(*level)
		if err != nil {
			return &training.ValidationError{Field: "level", Reason: err.Error()}
		}
		req.Difficulty = tier.Preset()
	}
	if err := req.Validate(time.Now()); err != nil {
		return err
	}

	plan, err := client.CreatePlan(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("created plan %d: %d training days until %s\n", plan.ID, len(plan.TrainingDays), plan.CompetitionDate)
	return nil
}

func runView(ctx context.Context, client *planservice.Client, args []string) error {
	flags := flag.NewFlagSet("view", flag.ExitOnError)
	uin := flags.String("uin", "", "athlete UIN")
	month := flags.String("month", "", "first month to show, YYYY-MM (default current)")
	months := flags.Int("months", 1, "number of months to show")
	if err := flags.Parse(args); err != nil {
		return err
	}

	session := planview.NewSession(time.Now)
	ticket := session.BeginLoad()
	plan, err := client.GetPlan(ctx, *uin)
	if err != nil {
		return err
	}
	if _, err := session.Apply(ticket, plan); err != nil {
		return err
	}

	if *month != "" {
		start, err := time.Parse(planview.MonthLayout, *month)
		if err != nil {
			return &training.ValidationError{Field: "month", Reason: "expected YYYY-MM"}
		}
		shift := monthsBetween(session.Month(), training.DateOf(start))
		for ; shift > 0; shift-- {
			session.NextMonth()
		}
		for ; shift < 0; shift++ {
			session.PrevMonth()
		}
	}

	summary, err := session.Summary()
	if err != nil {
		return err
	}
	printSummary(summary)

	for i := 0; i < *months; i++ {
		if i > 0 {
			session.NextMonth()
		}
		grid, err := session.Grid()
		if err != nil {
			return err
		}
		printGrid(grid)
	}

	chart, err := session.Chart()
	if err != nil {
		return err
	}
	printChart(chart)
	return nil
}

func runExport(ctx context.Context, client *planservice.Client, args []string) error {
	flags := flag.NewFlagSet("export", flag.ExitOnError)
	uin := flags.String("uin", "", "athlete UIN")
	out := flags.String("out", "training-plan.xlsx", "output workbook path")
	if err := flags.Parse(args); err != nil {
		return err
	}

	plan, err := client.GetPlan(ctx, *uin)
	if err != nil {
		return err
	}
	f, err := export.PlanWorkbook(plan, time.Now())
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(*out); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	fmt.Printf("plan %d exported to %s\n", plan.ID, *out)
	return nil
}

func runDelete(ctx context.Context, client *planservice.Client, args []string) error {
	flags := flag.NewFlagSet("delete", flag.ExitOnError)
	uin := flags.String("uin", "", "athlete UIN")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := client.DeletePlan(ctx, *uin); err != nil {
		return err
	}
	fmt.Printf("training plan of %s deleted\n", *uin)
	return nil
}

func runTiers() error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tRANGE\tPRESET\tDESCRIPTION")
	for _, tier := range training.DifficultyTiers() {
		lo, hi := tier.Range()
		fmt.Fprintf(tw, "%s\t%d-%d\t%d\t%s\n", tier, lo, hi, tier.Preset(), tier.Description())
	}
	return tw.Flush()
}

func printSummary(s planview.Summary) {
	fmt.Printf("competition: %s (%d weeks left)\n", s.CompetitionDate, s.WeeksUntil)
	fmt.Printf("difficulty:  %d, %s - %s\n", s.Difficulty, s.Tier, s.TierDescription)
	fmt.Printf("volume:      %s over %d days, %.1fh per week\n",
		training.FormatHours(s.TotalHours), s.TrainingDays, s.AverageWeeklyHours)
	fmt.Printf("sports:      swim %s, bike %s, run %s\n\n",
		training.FormatHours(s.Totals.Swimming),
		training.FormatHours(s.Totals.Cycling),
		training.FormatHours(s.Totals.Running),
	)
}

func printGrid(grid planview.MonthView) {
	fmt.Println(grid.Month)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(grid.Weekdays, "\t")+"\t")
	for _, week := range grid.Weeks() {
		cols := make([]string, 0, len(week))
		for _, cell := range week {
			cols = append(cols, cellLabel(cell))
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t")+"\t")
	}
	_ = tw.Flush()
	fmt.Println()
}

func cellLabel(cell planview.CalendarCell) string {
	if !cell.InCurrentMonth {
		return "."
	}
	label := fmt.Sprintf("%d", cell.Date.Day())
	if cell.Training != nil {
		label += " " + cell.HoursLabel
	}
	if cell.IsToday {
		label = "[" + label + "]"
	}
	return label
}

func printChart(chart planview.Chart) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WEEK\tSWIM\tBIKE\tRUN")
	for _, b := range chart.Weekly {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\n", b.Label, b.Swimming, b.Cycling, b.Running)
	}
	_ = tw.Flush()
}

func monthsBetween(from, to training.Date) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, training.ErrNotFound):
		return "no training plan found, create a new one"
	case errors.Is(err, training.ErrValidation), errors.Is(err, training.ErrOutOfRange):
		return "invalid input: " + err.Error()
	case errors.Is(err, training.ErrTransport):
		return "plan service unavailable, retry"
	default:
		return err.Error()
	}
}
