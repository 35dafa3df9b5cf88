package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/tendermint/tmlibs/log"

	"github.com/paydeck/treasury"
	"github.com/paydeck/treasury/coin"
	"github.com/paydeck/treasury/x/payroll"
)

const version = "0.1.0"

func helpMessage() {
	fmt.Println("payrun")
	fmt.Println("        Treasury disbursement rehearsal tool")
	fmt.Println("")
	fmt.Println("help     Print this message")
	fmt.Println("init     Create a fresh treasury state file")
	fmt.Println("addr     Print custody addresses for treasury identifiers")
	fmt.Println("balance  Print the custody balance of a treasury")
	fmt.Println("deposit  Move funds from an account into custody")
	fmt.Println("run      Execute a payout batch against a treasury state")
	fmt.Println("version  Print the tool version")
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "payrun")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = cmdInit(rest)
	case "addr":
		err = cmdAddr(os.Stdout, rest)
	case "balance":
		err = cmdBalance(os.Stdout, rest)
	case "deposit":
		err = cmdDeposit(logger, rest)
	case "run":
		err = cmdRun(logger, rest)
	case "version":
		fmt.Println(version)
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		helpMessage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func cmdInit(args []string) error {
	fl := flag.NewFlagSet("init", flag.ExitOnError)
	stateFl := fl.String("state", "treasury.json", "Path of the state file to create.")
	idFl := fl.String("id", "", "Treasury identifier.")
	adminFl := fl.String("admin", "", "Admin address, hex or bech32 encoded.")
	tickerFl := fl.String("ticker", "", "Currency managed by the treasury.")
	fl.Parse(args)

	if *idFl == "" || *adminFl == "" || *tickerFl == "" {
		return fmt.Errorf("id, admin and ticker are required")
	}
	if stateExists(*stateFl) {
		return fmt.Errorf("state file %q already exists", *stateFl)
	}
	admin, err := parseAddress(*adminFl)
	if err != nil {
		return err
	}

	st := treasuryState{
		TreasuryID: *idFl,
		Ticker:     *tickerFl,
		Admin:      admin,
		Accounts:   make(map[string]account),
	}
	// Reject a broken setup before anything is written.
	if _, err := payroll.NewTreasury(st.Ledger(), []byte(st.TreasuryID), st.Admin, st.Ticker, nil); err != nil {
		return err
	}
	return st.save(*stateFl)
}

func cmdAddr(out io.Writer, args []string) error {
	fl := flag.NewFlagSet("addr", flag.ExitOnError)
	headerFl := fl.Bool("header", true, "Display header")
	fl.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage:
	payrun addr [options] <treasury-id>...

Print the custody account address for each treasury identifier. Custody
addresses are derived deterministically, so they can be referenced and
funded before the treasury exists.

`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	if fl.NArg() == 0 {
		return fmt.Errorf("at least one treasury identifier is required")
	}

	w := tabwriter.NewWriter(out, 2, 0, 2, ' ', 0)
	defer w.Flush()

	if *headerFl {
		fmt.Fprintln(w, "treasury\thex\tbech32")
	}
	for _, id := range fl.Args() {
		custody := payroll.CustodyAccount([]byte(id))
		b32, err := custody.Bech32()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", id, custody, b32)
	}
	return nil
}

func cmdBalance(out io.Writer, args []string) error {
	fl := flag.NewFlagSet("balance", flag.ExitOnError)
	stateFl := fl.String("state", "treasury.json", "Path of the treasury state file.")
	fl.Parse(args)

	st, err := loadState(*stateFl)
	if err != nil {
		return err
	}
	tr, err := payroll.NewTreasury(st.Ledger(), []byte(st.TreasuryID), st.Admin, st.Ticker, nil)
	if err != nil {
		return err
	}
	balance, err := tr.Balance()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 2, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "treasury\tcustody\tbalance")
	fmt.Fprintf(w, "%s\t%s\t%s\n", st.TreasuryID, tr.Custody(), balance)
	return nil
}

func cmdDeposit(logger log.Logger, args []string) error {
	fl := flag.NewFlagSet("deposit", flag.ExitOnError)
	stateFl := fl.String("state", "treasury.json", "Path of the treasury state file.")
	fromFl := fl.String("from", "", "Depositor address, hex or bech32 encoded.")
	amountFl := fl.String("amount", "", `Amount in human format, for example "400 USDX".`)
	fl.Parse(args)

	from, err := parseAddress(*fromFl)
	if err != nil {
		return err
	}
	amount, err := coin.ParseHumanFormat(*amountFl)
	if err != nil {
		return err
	}

	st, err := loadState(*stateFl)
	if err != nil {
		return err
	}
	tr, err := payroll.NewTreasury(st.Ledger(), []byte(st.TreasuryID), st.Admin, st.Ticker, &payroll.TreasuryOptions{
		Emitter: &logEmitter{logger: logger},
	})
	if err != nil {
		return err
	}
	if err := tr.Deposit(from, amount); err != nil {
		return err
	}
	return st.save(*stateFl)
}

func cmdRun(logger log.Logger, args []string) error {
	fl := flag.NewFlagSet("run", flag.ExitOnError)
	stateFl := fl.String("state", "treasury.json", "Path of the treasury state file.")
	batchFl := fl.String("batch", "", "Path of the payout batch file.")
	dryRunFl := fl.Bool("dry-run", false, "Execute the batch but do not persist the result.")
	fl.Parse(args)

	if *batchFl == "" {
		return fmt.Errorf("batch file is required")
	}
	msg, err := loadBatch(*batchFl)
	if err != nil {
		return err
	}
	st, err := loadState(*stateFl)
	if err != nil {
		return err
	}
	tr, err := payroll.NewTreasury(st.Ledger(), []byte(st.TreasuryID), st.Admin, st.Ticker, &payroll.TreasuryOptions{
		Emitter: &logEmitter{logger: logger},
	})
	if err != nil {
		return err
	}

	record, err := tr.Disburse(st.Admin, msg)
	if err != nil {
		return err
	}
	logger.Info("batch executed",
		"linkage_id", record.LinkageID.String(),
		"total", record.Total.String(),
		"recipients", strconv.Itoa(record.RecipientCount))

	if *dryRunFl {
		logger.Info("dry run, state not persisted")
		return nil
	}
	return st.save(*stateFl)
}

// logEmitter forwards every treasury fact to the logger.
type logEmitter struct {
	logger log.Logger
}

var _ treasury.Emitter = (*logEmitter)(nil)

func (e *logEmitter) Emit(ev treasury.Event) {
	e.logger.Info("fact", "type", ev.EventType(), "data", fmt.Sprintf("%+v", ev))
}

func parseAddress(enc string) (treasury.Address, error) {
	var a treasury.Address
	if err := json.Unmarshal([]byte(strconv.Quote(enc)), &a); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}
