package main

import (
    "bufio"
    "context"
    "encoding/json"
    "errors"
    "flag"
    "fmt"
    "io"
    "os"
    "strings"
    "text/tabwriter"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/service"
)

var errHelp = errors.New("help provided")

// stringList collects a repeated string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
    *l = append(*l, v)
    return nil
}

func (l stringList) last() string {
    if len(l) == 0 {
        return ""
    }
    return l[len(l)-1]
}

type commandLine struct {
    backend      api.Backend
    sessions     *service.SessionService
    reservations *service.ReservationService
    settlements  *service.SettlementService
    messages     *service.MessageService
    in           *bufio.Reader
    out          io.Writer
}

func newCommandLine(b api.Backend, in io.Reader, out io.Writer) *commandLine {
    return &commandLine{
        backend:      b,
        sessions:     service.NewSessionService(b),
        reservations: service.NewReservationService(b),
        settlements:  service.NewSettlementService(b),
        messages:     service.NewMessageService(b),
        in:           bufio.NewReader(in),
        out:          out,
    }
}

// confirm asks a y/N question on the console.  Anything but y or yes,
// including end of input, declines.
func (cli *commandLine) confirm(question string) bool {
    fmt.Fprintf(cli.out, "%s [y/N] ", question)
    line, _ := cli.in.ReadString('\n')
    switch strings.ToLower(strings.TrimSpace(line)) {
    case "y", "yes":
        return true
    }
    fmt.Fprintln(cli.out, "aborted")
    return false
}

func (cli *commandLine) printUsage() {
    fmt.Fprintln(cli.out, "Usage: classctl [-email E -password P] COMMAND [flags]")
    fmt.Fprintln(cli.out, "  status                                      - show the login session")
    fmt.Fprintln(cli.out, "  classes [-instructor ID]                    - list classes")
    fmt.Fprintln(cli.out, "  sessions -class ID                          - list sessions with confirmed counts")
    fmt.Fprintln(cli.out, "  add-session -class ID -date D -start T -end T -capacity N -price P")
    fmt.Fprintln(cli.out, "  set-status -session ID -status S            - RECRUITING, CLOSED or FINISHED")
    fmt.Fprintln(cli.out, "  delete-session -session ID [-yes]")
    fmt.Fprintln(cli.out, "  reservations -session ID")
    fmt.Fprintln(cli.out, "  reserve -session ID -name N -phone P")
    fmt.Fprintln(cli.out, "  lookup -name N -phone P [-name N -phone P ...]")
    fmt.Fprintln(cli.out, "  cancel -id ID [-yes]")
    fmt.Fprintln(cli.out, "  settlements (-instructor ID | -session ID)")
    fmt.Fprintln(cli.out, "  pay -id ID")
    fmt.Fprintln(cli.out, "  pay-all (-instructor ID | -session ID)")
    fmt.Fprintln(cli.out, "  preview -template ID -reservation ID")
}

// run parses args (os.Args shape) and executes one command.  Global
// -email/-password flags log in first.
func (cli *commandLine) run(ctx context.Context, args []string) error {
    global := flag.NewFlagSet("classctl", flag.ContinueOnError)
    global.SetOutput(cli.out)
    email := global.String("email", os.Getenv("CLASSCTL_EMAIL"), "instructor email")
    password := global.String("password", os.Getenv("CLASSCTL_PASSWORD"), "instructor password")
    if len(args) < 1 {
        cli.printUsage()
        return errHelp
    }
    if err := global.Parse(args[1:]); err != nil {
        return err
    }
    rest := global.Args()
    if len(rest) == 0 {
        cli.printUsage()
        return errHelp
    }
    if *email != "" {
        if _, err := cli.backend.Auth().Login(ctx, *email, *password); err != nil {
            return err
        }
    }

    name, cmdArgs := rest[0], rest[1:]
    fs := flag.NewFlagSet(name, flag.ContinueOnError)
    fs.SetOutput(cli.out)
    id := fs.Uint64("id", 0, "record id")
    instructor := fs.Uint64("instructor", 0, "instructor id")
    class := fs.Uint64("class", 0, "class id")
    session := fs.Uint64("session", 0, "session id")
    template := fs.Uint64("template", 0, "message template id")
    reservation := fs.Uint64("reservation", 0, "reservation id")
    var applicants, phones stringList
    fs.Var(&applicants, "name", "applicant name (repeat for lookup)")
    fs.Var(&phones, "phone", "phone number (repeat for lookup)")
    yes := fs.Bool("yes", false, "skip the confirmation prompt")
    status := fs.String("status", "", "session status")
    date := fs.String("date", "", "session date YYYY-MM-DD")
    start := fs.String("start", "", "start time HH:MM")
    end := fs.String("end", "", "end time HH:MM")
    capacity := fs.Int("capacity", 0, "seats")
    price := fs.Int64("price", 0, "price per seat")
    if err := fs.Parse(cmdArgs); err != nil {
        return err
    }
    need := func(ok bool) error {
        if ok {
            return nil
        }
        fs.Usage()
        return errHelp
    }

    switch name {
    case "status":
        st, err := cli.backend.Auth().Status(ctx)
        if err != nil {
            return err
        }
        return cli.json(st)

    case "classes":
        ls, err := cli.backend.Listings().ListByInstructor(ctx, *instructor)
        if err != nil {
            return err
        }
        return cli.table("ID\tNAME\tLOCATION\tSHARE\tCODE", len(ls), func(i int) []any {
            l := ls[i]
            return []any{l.ID, l.Name, l.Location, l.ShareStatus, l.ShareCode}
        })

    case "sessions":
        if err := need(*class != 0); err != nil {
            return err
        }
        ss, err := cli.sessions.ListWithCounts(ctx, *class)
        if err != nil {
            return err
        }
        return cli.table("ID\tDATE\tTIME\tSTATUS\tSEATS\tLEFT\tCONFIRMED\tPRICE", len(ss), func(i int) []any {
            s := ss[i]
            return []any{s.ID, s.Date, s.StartTime + "-" + s.EndTime, s.Status,
                fmt.Sprintf("%d/%d", s.CurrentNum, s.Capacity), s.Remaining(), s.ConfirmedCount, s.Price}
        })

    case "add-session":
        if err := need(*class != 0); err != nil {
            return err
        }
        s, err := cli.sessions.Create(ctx, *class, model.SessionInput{
            Date: *date, StartTime: *start, EndTime: *end, Capacity: *capacity, Price: *price,
        })
        if err != nil {
            return err
        }
        return cli.json(s)

    case "set-status":
        if err := need(*session != 0 && *status != ""); err != nil {
            return err
        }
        s, err := cli.sessions.UpdateStatus(ctx, *session, model.SessionStatus(*status))
        if err != nil {
            return err
        }
        return cli.json(s)

    case "delete-session":
        if err := need(*session != 0); err != nil {
            return err
        }
        if !*yes && !cli.confirm(fmt.Sprintf("Delete session %d?", *session)) {
            return nil
        }
        if err := cli.sessions.Delete(ctx, *session); err != nil {
            return err
        }
        fmt.Fprintln(cli.out, "deleted")
        return nil

    case "reservations":
        if err := need(*session != 0); err != nil {
            return err
        }
        rs, err := cli.reservations.ListBySession(ctx, *session)
        if err != nil {
            return err
        }
        return cli.reservationTable(rs)

    case "reserve":
        if err := need(*session != 0); err != nil {
            return err
        }
        rid, err := cli.reservations.Create(ctx, *session, applicants.last(), phones.last())
        if err != nil {
            return err
        }
        fmt.Fprintf(cli.out, "reservation %d\n", rid)
        return nil

    case "lookup":
        if err := need(len(applicants) > 0 && len(applicants) == len(phones)); err != nil {
            return err
        }
        queries := make([]service.Query, len(applicants))
        for i := range applicants {
            queries[i] = service.Query{Name: applicants[i], Phone: phones[i]}
        }
        found, err := cli.reservations.LookupMany(ctx, queries)
        if err != nil {
            return err
        }
        var rs []model.Reservation
        for _, batch := range found {
            rs = append(rs, batch...)
        }
        return cli.reservationTable(rs)

    case "cancel":
        if err := need(*id != 0); err != nil {
            return err
        }
        if !*yes && !cli.confirm(fmt.Sprintf("Cancel reservation %d?", *id)) {
            return nil
        }
        if err := cli.reservations.Cancel(ctx, *id); err != nil {
            return err
        }
        fmt.Fprintln(cli.out, "cancelled")
        return nil

    case "settlements":
        var sum model.SettlementSummary
        var err error
        switch {
        case *session != 0:
            sum, err = cli.settlements.SummaryForSession(ctx, *session)
        case *instructor != 0:
            sum, err = cli.settlements.SummaryForInstructor(ctx, *instructor)
        default:
            return need(false)
        }
        if err != nil {
            return err
        }
        if err := cli.table("ID\tRESERVATION\tAMOUNT\tSTATUS", len(sum.Records), func(i int) []any {
            r := sum.Records[i]
            return []any{r.ID, r.ReservationID, r.Amount, r.Status}
        }); err != nil {
            return err
        }
        fmt.Fprintf(cli.out, "paid %d, ready %d\n", sum.TotalPaidAmount, sum.TotalReadyAmount)
        return nil

    case "pay":
        if err := need(*id != 0); err != nil {
            return err
        }
        rec, err := cli.settlements.Pay(ctx, *id)
        if err != nil {
            return err
        }
        return cli.json(rec)

    case "pay-all":
        var res service.BatchResult
        var err error
        switch {
        case *session != 0:
            res, err = cli.settlements.PayAllInSession(ctx, *session)
        case *instructor != 0:
            res, err = cli.settlements.PayAllForInstructor(ctx, *instructor)
        default:
            return need(false)
        }
        fmt.Fprintf(cli.out, "paid %d, failed %d\n", len(res.Paid), len(res.Failed))
        return err

    case "preview":
        if err := need(*template != 0 && *reservation != 0); err != nil {
            return err
        }
        text, err := cli.messages.Preview(ctx, *template, *reservation)
        if err != nil {
            return err
        }
        fmt.Fprintln(cli.out, text)
        return nil

    default:
        cli.printUsage()
        return errHelp
    }
}

func (cli *commandLine) json(v any) error {
    enc := json.NewEncoder(cli.out)
    enc.SetIndent("", "  ")
    return enc.Encode(v)
}

func (cli *commandLine) table(header string, n int, row func(int) []any) error {
    w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
    fmt.Fprintln(w, header)
    for i := 0; i < n; i++ {
        cells := row(i)
        for j, c := range cells {
            if j > 0 {
                fmt.Fprint(w, "\t")
            }
            fmt.Fprint(w, c)
        }
        fmt.Fprintln(w)
    }
    return w.Flush()
}

func (cli *commandLine) reservationTable(rs []model.Reservation) error {
    return cli.table("ID\tSESSION\tNAME\tPHONE\tSTATUS", len(rs), func(i int) []any {
        r := rs[i]
        return []any{r.ID, r.SessionID, r.ApplicantName, r.PhoneNumber, r.Status}
    })
}
