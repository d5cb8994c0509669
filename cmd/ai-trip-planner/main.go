package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"ai-trip-planner/internal/clipper"
	"ai-trip-planner/internal/config"
	"ai-trip-planner/internal/database"
	"ai-trip-planner/internal/enrich"
	"ai-trip-planner/internal/itinerary"
	"ai-trip-planner/internal/ledger"
	"ai-trip-planner/internal/llm"
	"ai-trip-planner/internal/metrics"
	"ai-trip-planner/internal/share"
	"ai-trip-planner/internal/store"
	"ai-trip-planner/internal/trip"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	kv := store.New(db.SQL)
	repo := trip.NewRepository(kv)
	if err := repo.LoadInitialState(); err != nil {
		log.Fatalf("Failed to load trips: %v", err)
	}

	metricsStore := metrics.NewStore(db.SQL)

	app := &cli{
		cfg:          cfg,
		repo:         repo,
		metricsStore: metricsStore,
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%v", err)
	}
}

type cli struct {
	cfg          *config.Config
	repo         *trip.Repository
	metricsStore *metrics.Store
}

func (a *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "trips":
		return a.cmdTrips()
	case "new":
		return a.cmdNew(args)
	case "switch":
		return a.cmdSwitch(args)
	case "delete":
		return a.cmdDelete(args)
	case "show":
		return a.cmdShow(args)
	case "add-day":
		return a.cmdAddDay()
	case "del-day":
		return a.cmdDelDay(args)
	case "set-date":
		return a.cmdSetDate(args)
	case "add-item":
		return a.cmdAddItem(args)
	case "del-item":
		return a.cmdDelItem(args)
	case "enrich":
		return a.cmdEnrich(ctx, args)
	case "reset":
		return a.cmdReset(args)
	case "pack":
		return a.cmdPack(ctx)
	case "venues":
		return a.cmdVenues(ctx, args)
	case "clip":
		return a.cmdClip(ctx, args)
	case "budget":
		return a.cmdBudget(ctx, args)
	case "add-expense":
		return a.cmdAddExpense(args)
	case "del-expense":
		return a.cmdDelExpense(args)
	case "flights":
		return a.cmdFlights()
	case "add-flight":
		return a.cmdAddFlight(args)
	case "del-flight":
		return a.cmdDelFlight(args)
	case "hotels":
		return a.cmdHotels()
	case "add-hotel":
		return a.cmdAddHotel(args)
	case "del-hotel":
		return a.cmdDelHotel(args)
	case "contacts":
		return a.cmdContacts(args)
	case "add-contact":
		return a.cmdAddContact(args)
	case "del-contact":
		return a.cmdDelContact(args)
	case "checklist":
		return a.cmdChecklist()
	case "add-check":
		return a.cmdAddCheck(args)
	case "check":
		return a.cmdCheck(args)
	case "del-check":
		return a.cmdDelCheck(args)
	case "lang":
		return a.cmdLang(args)
	case "flag":
		return a.cmdFlag(args)
	case "export":
		return a.cmdExport()
	case "import":
		return a.cmdImport(args)
	case "text":
		fmt.Print(share.PlainText(a.repo.Active()))
		return nil
	case "ics":
		return a.cmdICS(args)
	case "pdf":
		return a.cmdPDF(args)
	case "qr":
		return a.cmdQR(args)
	case "usage":
		return a.cmdUsage(args)
	case "metrics-cleanup":
		return a.cmdMetricsCleanup(args)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
		return nil
	}
}

// textGenerator builds the Gemini client, optionally wrapped in a rate
// limiter. It is only called by the AI-backed commands so the offline
// commands work without an API key.
func (a *cli) textGenerator(ctx context.Context) (llm.TextGenerator, func(), error) {
	gen, err := llm.NewGeminiClient(ctx, a.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	cleanup := func() {
		if closer, ok := gen.(llm.Closer); ok {
			closer.Close()
		}
	}
	return llm.NewRateLimitedGenerator(gen, 10), cleanup, nil
}

func (a *cli) coordinator(ctx context.Context) (*enrich.Coordinator, func(), error) {
	gen, cleanup, err := a.textGenerator(ctx)
	if err != nil {
		return nil, nil, err
	}
	return enrich.NewCoordinator(gen, a.metricsStore), cleanup, nil
}

func (a *cli) language() string {
	settings, err := trip.LoadSettings(a.repo.Store())
	if err != nil {
		return "EN"
	}
	return settings.Language
}

func (a *cli) cmdTrips() error {
	for i, t := range a.repo.Trips {
		marker := " "
		if t.ID == a.repo.ActiveID {
			marker = "*"
		}
		fmt.Printf("%s %d. %s (%d days)\n", marker, i+1, t.Destination, len(t.Itinerary))
	}
	return nil
}

func (a *cli) cmdNew(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: new <destination>")
	}
	t, err := a.repo.CreateTrip(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Printf("Created trip to %s (now active).\n", t.Destination)
	return nil
}

func (a *cli) cmdSwitch(args []string) error {
	t, err := a.tripByNumber(args)
	if err != nil {
		return err
	}
	if err := a.repo.SetActiveTrip(t.ID); err != nil {
		return err
	}
	fmt.Printf("Active trip is now %s.\n", t.Destination)
	return nil
}

func (a *cli) cmdDelete(args []string) error {
	t, err := a.tripByNumber(args)
	if err != nil {
		return err
	}
	if err := a.repo.DeleteTrip(t.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted trip to %s.\n", t.Destination)
	return nil
}

func (a *cli) cmdShow(args []string) error {
	active := a.repo.Active()
	if len(args) == 0 {
		fmt.Print(share.PlainText(active))
		return nil
	}
	day, err := a.dayByNumber(args)
	if err != nil {
		return err
	}
	printDay(day)
	return nil
}

func (a *cli) cmdAddDay() error {
	editor := itinerary.NewEditor(a.repo.Active())
	day := editor.AddDay()
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Printf("Added Day %d (%s).\n", day.DayID, day.Date)
	return nil
}

func (a *cli) cmdDelDay(args []string) error {
	day, err := a.dayByNumber(args)
	if err != nil {
		return err
	}
	editor := itinerary.NewEditor(a.repo.Active())
	if err := editor.DeleteDay(day.DayID); err != nil {
		return err
	}
	a.repo.SelectedDay = 1
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Println("Day removed; remaining days renumbered.")
	return nil
}

func (a *cli) cmdSetDate(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: set-date <day> <YYYY-MM-DD>")
	}
	day, err := a.dayByNumber(args[:1])
	if err != nil {
		return err
	}
	editor := itinerary.NewEditor(a.repo.Active())
	if err := editor.UpdateDayDate(day.DayID, args[1]); err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Printf("Day %d is now dated %s.\n", day.DayID, args[1])
	return nil
}

func (a *cli) cmdAddItem(args []string) error {
	fs := flag.NewFlagSet("add-item", flag.ExitOnError)
	dayNum := fs.Int("day", 1, "Day number")
	timeStr := fs.String("time", "", "Time (HH:MM)")
	title := fs.String("title", "", "Activity title")
	location := fs.String("location", "", "Location")
	itemType := fs.String("type", "", "SIGHTSEEING|FOOD|TRANSPORT|SHOPPING|HOTEL|MISC")
	fs.Parse(args)

	editor := itinerary.NewEditor(a.repo.Active())
	item, err := editor.AddItem(*dayNum)
	if err != nil {
		return err
	}

	updated := *item
	if *timeStr != "" {
		updated.Time = *timeStr
	}
	if *title != "" {
		updated.Title = *title
	}
	if *location != "" {
		updated.Location = *location
		updated.NavQuery = *location
	}
	if *itemType != "" {
		updated.Type = trip.ItemType(strings.ToUpper(*itemType))
	}
	if err := editor.UpdateItem(*dayNum, updated); err != nil {
		return err
	}

	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Printf("Added %s at %s on Day %d.\n", updated.Title, updated.Time, *dayNum)
	return nil
}

func (a *cli) cmdDelItem(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: del-item <day> <item-id>")
	}
	day, err := a.dayByNumber(args[:1])
	if err != nil {
		return err
	}
	editor := itinerary.NewEditor(a.repo.Active())
	if err := editor.DeleteItem(day.DayID, args[1]); err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Println("Item removed.")
	return nil
}

func (a *cli) cmdEnrich(ctx context.Context, args []string) error {
	day, err := a.dayByNumber(args)
	if err != nil {
		return err
	}

	coordinator, cleanup, err := a.coordinator(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	active := a.repo.Active()
	if err := coordinator.EnrichDay(ctx, day, active.Destination, a.language()); err != nil {
		if saveErr := a.repo.Save(); saveErr != nil {
			return saveErr
		}
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	printDay(day)
	return nil
}

func (a *cli) cmdReset(args []string) error {
	day, err := a.dayByNumber(args)
	if err != nil {
		return err
	}
	coordinator := enrich.NewCoordinator(nil, a.metricsStore)
	if err := coordinator.ResetDay(day); err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Printf("Day %d restored to its pre-enrichment items.\n", day.DayID)
	return nil
}

func (a *cli) cmdPack(ctx context.Context) error {
	coordinator, cleanup, err := a.coordinator(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	active := a.repo.Active()
	merged, err := coordinator.SuggestPacking(ctx, active.Destination, a.language(), active.Checklist)
	if err != nil {
		return err
	}
	active.Checklist = merged
	if err := a.repo.Save(); err != nil {
		return err
	}

	for _, item := range merged {
		mark := "[ ]"
		if item.Checked {
			mark = "[x]"
		}
		fmt.Printf("%s %s\n", mark, item.Text)
	}
	return nil
}

func (a *cli) cmdVenues(ctx context.Context, args []string) error {
	location := a.repo.Active().LastLocation(a.repo.SelectedDay)
	if len(args) > 0 {
		location = args[0]
	}
	timeOfDay := "12:00"
	if len(args) > 1 {
		timeOfDay = args[1]
	}

	coordinator, cleanup, err := a.coordinator(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	venues, err := coordinator.SuggestVenues(ctx, location, timeOfDay, a.language())
	if err != nil {
		return err
	}
	for _, v := range venues {
		fmt.Printf("- %s (%s): %s\n", v.Name, v.Type, v.Reason)
	}
	return nil
}

func (a *cli) cmdClip(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("clip", flag.ExitOnError)
	dayNum := fs.Int("day", 1, "Day number to receive the clipped activities")
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: clip [-day N] <url>")
	}

	gen, cleanup, err := a.textGenerator(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	day, err := a.dayByNumber([]string{fmt.Sprint(*dayNum)})
	if err != nil {
		return err
	}

	plan, err := clipper.NewClipper(gen).ClipURL(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	items := plan.ToItineraryItems()
	day.Items = append(day.Items, items...)
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Printf("Clipped %q: added %d activities to Day %d.\n", plan.Title, len(items), day.DayID)
	return nil
}

func (a *cli) cmdBudget(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("budget", flag.ExitOnError)
	refresh := fs.Bool("refresh", false, "Refresh exchange rates from the network")
	fs.Parse(args)

	rates := ledger.DefaultRates
	if *refresh && a.cfg.RatesURL != "" {
		rates = ledger.NewRatesClient(a.cfg.RatesURL).Refresh(ctx, rates)
	}

	active := a.repo.Active()
	for _, line := range active.Budget {
		fmt.Printf("- %s: %.2f %s (%s) [%s]\n", line.Item, line.Cost, line.Currency, line.Category, line.ID)
	}
	total := ledger.Total(active.Budget, rates)
	remaining := ledger.Remaining(active.TotalBudget, total)
	fmt.Printf("Spent: %.2f %s of %.2f\n", total, a.cfg.HomeCurrency, active.TotalBudget)
	if remaining < 0 {
		fmt.Printf("Over budget by %.2f %s\n", -remaining, a.cfg.HomeCurrency)
	} else {
		fmt.Printf("Remaining: %.2f %s\n", remaining, a.cfg.HomeCurrency)
	}

	for _, h := range active.Hotels {
		fmt.Printf("Hotel %s: %d nights\n", h.Name, ledger.Nights(h.CheckIn, h.CheckOut))
	}
	return nil
}

func (a *cli) cmdAddExpense(args []string) error {
	fs := flag.NewFlagSet("add-expense", flag.ExitOnError)
	item := fs.String("item", "", "What the money was spent on")
	cost := fs.Float64("cost", 0, "Amount in the given currency")
	currency := fs.String("currency", "", "Currency code (defaults to the home currency)")
	category := fs.String("category", "Misc", "Category label")
	fs.Parse(args)

	line, err := ledger.AddBudgetLine(a.repo.Active(), *item, *cost, *currency, *category)
	if err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Printf("Recorded %s: %.2f %s [%s].\n", line.Item, line.Cost, line.Currency, line.ID)
	return nil
}

func (a *cli) cmdDelExpense(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: del-expense <id>")
	}
	if err := ledger.DeleteBudgetLine(a.repo.Active(), args[0]); err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Println("Expense removed.")
	return nil
}

func (a *cli) cmdFlights() error {
	for _, f := range a.repo.Active().Flights {
		fmt.Printf("- %s %s %s %s -> %s %s %s [%s]\n",
			f.FlightNumber, f.DepartureDate, f.DepartureTime, f.DepartureAirport,
			f.ArrivalAirport, f.ArrivalDate, f.ArrivalTime, f.ID)
	}
	return nil
}

func (a *cli) cmdAddFlight(args []string) error {
	fs := flag.NewFlagSet("add-flight", flag.ExitOnError)
	number := fs.String("number", "", "Flight number")
	from := fs.String("from", "", "Departure airport")
	to := fs.String("to", "", "Arrival airport")
	depDate := fs.String("dep-date", "", "Departure date (YYYY-MM-DD)")
	depTime := fs.String("dep-time", "", "Departure time (HH:MM)")
	arrDate := fs.String("arr-date", "", "Arrival date (YYYY-MM-DD)")
	arrTime := fs.String("arr-time", "", "Arrival time (HH:MM)")
	ref := fs.String("ref", "", "Booking reference")
	fs.Parse(args)

	f, err := ledger.AddFlight(a.repo.Active(), trip.FlightInfo{
		FlightNumber:     *number,
		DepartureAirport: *from,
		ArrivalAirport:   *to,
		DepartureDate:    *depDate,
		DepartureTime:    *depTime,
		ArrivalDate:      *arrDate,
		ArrivalTime:      *arrTime,
		BookingRef:       *ref,
	})
	if err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Printf("Added flight %s [%s].\n", f.FlightNumber, f.ID)
	return nil
}

func (a *cli) cmdDelFlight(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: del-flight <id>")
	}
	if err := ledger.DeleteFlight(a.repo.Active(), args[0]); err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Println("Flight removed.")
	return nil
}

func (a *cli) cmdHotels() error {
	for _, h := range a.repo.Active().Hotels {
		fmt.Printf("- %s, %s: %s to %s (%d nights) [%s]\n",
			h.Name, h.Address, h.CheckIn, h.CheckOut, ledger.Nights(h.CheckIn, h.CheckOut), h.ID)
	}
	return nil
}

func (a *cli) cmdAddHotel(args []string) error {
	fs := flag.NewFlagSet("add-hotel", flag.ExitOnError)
	name := fs.String("name", "", "Hotel name")
	address := fs.String("address", "", "Address")
	checkIn := fs.String("checkin", "", "Check-in date (YYYY-MM-DD)")
	checkOut := fs.String("checkout", "", "Check-out date (YYYY-MM-DD)")
	ref := fs.String("ref", "", "Booking reference")
	fs.Parse(args)

	h, err := ledger.AddHotel(a.repo.Active(), trip.HotelInfo{
		Name:       *name,
		Address:    *address,
		CheckIn:    *checkIn,
		CheckOut:   *checkOut,
		BookingRef: *ref,
	})
	if err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Printf("Added hotel %s [%s].\n", h.Name, h.ID)
	return nil
}

func (a *cli) cmdDelHotel(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: del-hotel <id>")
	}
	if err := ledger.DeleteHotel(a.repo.Active(), args[0]); err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Println("Hotel removed.")
	return nil
}

func (a *cli) cmdAddContact(args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	name := fs.String("name", "", "Contact name")
	number := fs.String("number", "", "Phone number")
	note := fs.String("note", "", "Note")
	fs.Parse(args)

	c, err := ledger.AddContact(a.repo.Active(), *name, *number, *note)
	if err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Printf("Added contact %s (%s) [%s].\n", c.Name, c.Number, c.ID)
	return nil
}

func (a *cli) cmdDelContact(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: del-contact <id>")
	}
	if err := ledger.DeleteContact(a.repo.Active(), args[0]); err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Println("Contact removed.")
	return nil
}

func (a *cli) cmdChecklist() error {
	for _, item := range a.repo.Active().Checklist {
		mark := "[ ]"
		if item.Checked {
			mark = "[x]"
		}
		fmt.Printf("%s %s [%s]\n", mark, item.Text, item.ID)
	}
	return nil
}

func (a *cli) cmdAddCheck(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: add-check <text>")
	}
	item, err := ledger.AddChecklistItem(a.repo.Active(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Printf("Added %s [%s].\n", item.Text, item.ID)
	return nil
}

func (a *cli) cmdCheck(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: check <id>")
	}
	item, err := ledger.ToggleChecklistItem(a.repo.Active(), args[0])
	if err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	state := "unchecked"
	if item.Checked {
		state = "checked"
	}
	fmt.Printf("%s is now %s.\n", item.Text, state)
	return nil
}

func (a *cli) cmdDelCheck(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: del-check <id>")
	}
	if err := ledger.DeleteChecklistItem(a.repo.Active(), args[0]); err != nil {
		return err
	}
	if err := a.repo.Save(); err != nil {
		return err
	}
	fmt.Println("Checklist item removed.")
	return nil
}

func (a *cli) cmdContacts(args []string) error {
	active := a.repo.Active()
	if len(args) > 0 {
		active.Contacts = ledger.SeedEmergencyContacts(active.Contacts, strings.Join(args, " "))
		if err := a.repo.Save(); err != nil {
			return err
		}
	}
	for _, c := range active.Contacts {
		fmt.Printf("- %s: %s", c.Name, c.Number)
		if c.Note != "" {
			fmt.Printf(" (%s)", c.Note)
		}
		fmt.Printf(" [%s]\n", c.ID)
	}
	return nil
}

func (a *cli) cmdLang(args []string) error {
	settings, err := trip.LoadSettings(a.repo.Store())
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Println(settings.Language)
		return nil
	}
	lang := strings.ToUpper(args[0])
	if lang != "EN" && lang != "TC" {
		return fmt.Errorf("language must be EN or TC")
	}
	settings.Language = lang
	if err := trip.SaveSettings(a.repo.Store(), settings); err != nil {
		return err
	}
	fmt.Printf("Language set to %s.\n", lang)
	return nil
}

func (a *cli) cmdFlag(args []string) error {
	settings, err := trip.LoadSettings(a.repo.Store())
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Println(settings.Flag)
		return nil
	}
	settings.Flag = args[0]
	if err := trip.SaveSettings(a.repo.Store(), settings); err != nil {
		return err
	}
	fmt.Printf("Flag set to %s.\n", settings.Flag)
	return nil
}

func (a *cli) cmdExport() error {
	code, err := share.EncodeTrip(a.repo.Active())
	if err != nil {
		return err
	}
	fmt.Println(code)
	return nil
}

func (a *cli) cmdImport(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: import <share-code>")
	}
	t, err := share.DecodeTrip(args[0])
	if err != nil {
		return err
	}
	if err := a.repo.ImportTrip(t); err != nil {
		return err
	}
	fmt.Printf("Imported trip to %s (now active).\n", t.Destination)
	return nil
}

func (a *cli) cmdICS(args []string) error {
	out := outputPath(args, "trip.ics")
	if err := os.WriteFile(out, []byte(share.Calendar(a.repo.Active())), 0o644); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

func (a *cli) cmdPDF(args []string) error {
	data, err := share.PDF(a.repo.Active())
	if err != nil {
		return err
	}
	out := outputPath(args, "trip.pdf")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

func (a *cli) cmdQR(args []string) error {
	png, err := share.QRCode(a.repo.Active())
	if err != nil {
		return err
	}
	out := outputPath(args, "trip-qr.png")
	if err := os.WriteFile(out, png, 0o644); err != nil {
		return fmt.Errorf("failed to write qr code: %w", err)
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

func (a *cli) cmdUsage(args []string) error {
	fs := flag.NewFlagSet("usage", flag.ExitOnError)
	days := fs.Int("days", 7, "Number of days to report")
	fs.Parse(args)

	usage, err := a.metricsStore.GetDailyUsage(*days)
	if err != nil {
		return err
	}
	if len(usage) == 0 {
		fmt.Println("No AI usage recorded yet.")
		return nil
	}
	for _, d := range usage {
		fmt.Printf("%s: %d tokens (%d calls)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution)
	}
	return nil
}

func (a *cli) cmdMetricsCleanup(args []string) error {
	fs := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
	days := fs.Int("days", 30, "Keep records for the last N days")
	fs.Parse(args)

	if err := a.metricsStore.Cleanup(*days); err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	fmt.Println("Old metric records removed.")
	return nil
}

func (a *cli) tripByNumber(args []string) (*trip.Trip, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("expected a trip number (see 'trips')")
	}
	var n int
	if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n < 1 || n > len(a.repo.Trips) {
		return nil, fmt.Errorf("invalid trip number %q", args[0])
	}
	return a.repo.Trips[n-1], nil
}

func (a *cli) dayByNumber(args []string) (*trip.DayPlan, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("expected a day number")
	}
	var n int
	if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil {
		return nil, fmt.Errorf("invalid day number %q", args[0])
	}
	day := a.repo.Active().Day(n)
	if day == nil {
		return nil, fmt.Errorf("day %d does not exist in the active trip", n)
	}
	return day, nil
}

func printDay(day *trip.DayPlan) {
	fmt.Printf("Day %d (%s)\n", day.DayID, day.Date)
	if day.WeatherSummary != "" {
		fmt.Printf("Weather: %s\n", day.WeatherSummary)
	}
	if day.Pace != "" {
		fmt.Printf("Pace: %s\n", day.Pace)
	}
	if day.LogicWarning != "" {
		fmt.Printf("Warning: %s\n", day.LogicWarning)
	}
	for _, item := range day.Items {
		fmt.Printf("  %s  %s [%s]", item.Time, item.Title, item.ID)
		if item.Location != "" {
			fmt.Printf(" @ %s", item.Location)
		}
		fmt.Println()
		for _, tip := range item.Tips {
			fmt.Printf("      tip: %s\n", tip)
		}
		if item.MapsURL != "" {
			fmt.Printf("      map: %s\n", item.MapsURL)
		}
	}
}

func printUsage() {
	fmt.Println("Usage: ai-trip-planner <command> [arguments]")
	fmt.Println("\nTrips:")
	fmt.Println("  trips                       List trips (active marked with *)")
	fmt.Println("  new <destination>           Create a trip and make it active")
	fmt.Println("  switch <n>                  Switch the active trip")
	fmt.Println("  delete <n>                  Delete a trip (the last one cannot be deleted)")
	fmt.Println("  show [day]                  Show the active trip or one day")
	fmt.Println("\nItinerary:")
	fmt.Println("  add-day                     Append a day to the itinerary")
	fmt.Println("  del-day <day>               Remove a day and renumber the rest")
	fmt.Println("  set-date <day> <date>       Change a day's date")
	fmt.Println("  add-item [flags]            Add an activity (-day -time -title -location -type)")
	fmt.Println("  del-item <day> <item-id>    Remove an activity")
	fmt.Println("\nAI:")
	fmt.Println("  enrich <day>                Weather, tips and map links for a day")
	fmt.Println("  reset <day>                 Undo the last enrichment of a day")
	fmt.Println("  pack                        Packing checklist suggestions")
	fmt.Println("  venues [location] [time]    Venue ideas near your last stop")
	fmt.Println("  clip [-day N] <url>         Extract activities from a travel article")
	fmt.Println("\nLedger:")
	fmt.Println("  budget [-refresh]           Spending summary in the home currency")
	fmt.Println("  add-expense [flags]         Record an expense (-item -cost -currency -category)")
	fmt.Println("  del-expense <id>            Remove an expense")
	fmt.Println("  flights                     List flight records")
	fmt.Println("  add-flight [flags]          Add a flight (-number -from -to -dep-date ...)")
	fmt.Println("  del-flight <id>             Remove a flight")
	fmt.Println("  hotels                      List accommodation records")
	fmt.Println("  add-hotel [flags]           Add a hotel (-name -address -checkin -checkout)")
	fmt.Println("  del-hotel <id>              Remove a hotel")
	fmt.Println("  contacts [country]          Emergency contacts, optionally seeded for a country")
	fmt.Println("  add-contact [flags]         Add a contact (-name -number -note)")
	fmt.Println("  del-contact <id>            Remove a contact")
	fmt.Println("  checklist                   List packing checklist entries")
	fmt.Println("  add-check <text>            Add a checklist entry")
	fmt.Println("  check <id>                  Toggle a checklist entry")
	fmt.Println("  del-check <id>              Remove a checklist entry")
	fmt.Println("  lang [EN|TC]                Show or set the response language")
	fmt.Println("  flag [emoji]                Show or set the profile flag")
	fmt.Println("\nSharing:")
	fmt.Println("  export                      Print the active trip's share code")
	fmt.Println("  import <code>               Import a trip from a share code")
	fmt.Println("  text                        Plain-text listing")
	fmt.Println("  ics [file]                  iCalendar export")
	fmt.Println("  pdf [file]                  PDF export")
	fmt.Println("  qr [file]                   QR code of the share code")
	fmt.Println("\nMaintenance:")
	fmt.Println("  usage [-days N]             Recent AI token usage")
	fmt.Println("  metrics-cleanup [-days N]   Remove old metric records")
}

func outputPath(args []string, fallback string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return fallback
}
