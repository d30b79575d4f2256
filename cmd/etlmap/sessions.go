package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"etlmap/internal/report"
	"etlmap/internal/storage"
)

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List stored analysis sessions",
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print the markdown report for a stored session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)

	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 20, "Maximum number of sessions to list")
}

func openRunStore() (*storage.RunStore, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg)

	db, err := storage.Open(configRoot, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewRunStore(db), func() { _ = db.Close() }, nil
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	runs, closeDB, err := openRunStore()
	if err != nil {
		return err
	}
	defer closeDB()

	summaries, err := runs.List(sessionsLimit)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("No stored sessions.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SESSION\tREPOSITORY\tSOURCES\tTARGETS\tTRANSFORMS\tERRORS\tCOMPLETED")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			s.SessionID,
			s.RepositoryName,
			s.SourceCount,
			s.TargetCount,
			s.TransformationCount,
			s.ErrorCount,
			s.CompletedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	runs, closeDB, err := openRunStore()
	if err != nil {
		return err
	}
	defer closeDB()

	result, err := runs.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Print(report.Assemble(result))
	return nil
}
