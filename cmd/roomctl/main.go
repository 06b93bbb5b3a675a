// Command roomctl is a terminal front end for the room reservation service:
// the same booking lifecycle the mobile client drives, operable from a shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/campusrooms/booking-client/internal/core/ports"
	"github.com/campusrooms/booking-client/internal/core/service"
	"github.com/campusrooms/booking-client/internal/infrastructure/config"
	"github.com/campusrooms/booking-client/internal/infrastructure/rest"
	"github.com/campusrooms/booking-client/internal/infrastructure/session"
	"github.com/campusrooms/booking-client/pkg/logger"
)

const usage = `usage: roomctl <command> [flags]

commands:
  register     create an account
  login        log in and cache the session
  logout       discard the cached session
  profile      show the logged-in account
  rooms        list bookable rooms
  list         list bookings (admins see everyone's)
  create       create a booking
  edit         change a booking's time range
  delete       delete your own booking
  approve      approve a pending booking (admin)
  admin-delete delete any booking (admin)
`

type app struct {
	cfg        *config.Config
	log        zerolog.Logger
	store      ports.SessionStore
	auth       *rest.AuthClient
	rooms      *rest.RoomRepository
	controller *service.BookingListController
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "roomctl:", err)
		os.Exit(1)
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "roomctl:", err)
		os.Exit(1)
	}
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout, store, log)
	if err != nil {
		return nil, err
	}
	resolver := service.NewIdentityResolver(store, log)
	repo := rest.NewBookingRepository(client)

	return &app{
		cfg:        cfg,
		log:        log,
		store:      store,
		auth:       rest.NewAuthClient(client, store, log),
		rooms:      rest.NewRoomRepository(client),
		controller: service.NewBookingListController(repo, resolver, store, log),
	}, nil
}

func newSessionStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, error) {
	switch cfg.Session.Backend {
	case "file":
		return session.NewFile(cfg.Session.File), nil
	case "redis":
		return session.ConnectRedis(ctx, session.RedisConfig{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
			Key:  cfg.Session.Key,
		})
	case "memory":
		return session.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.auth.Logout(ctx)
	case "profile":
		return a.profile(ctx)
	case "rooms":
		return a.listRooms(ctx)
	case "list":
		return a.list(ctx)
	case "create":
		return a.create(ctx, args)
	case "edit":
		return a.edit(ctx, args)
	case "delete":
		return a.rowAction(ctx, args, a.controller.Delete)
	case "approve":
		return a.rowAction(ctx, args, a.controller.Approve)
	case "admin-delete":
		return a.rowAction(ctx, args, a.controller.AdminDelete)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	fullname := fs.String("fullname", "", "display name")
	email := fs.String("email", "", "contact email")
	role := fs.String("role", "student", "student, teacher or admin")
	_ = fs.Parse(args)

	err := a.auth.Register(ctx, ports.RegisterInput{
		Username: *username,
		Password: *password,
		FullName: *fullname,
		Email:    *email,
		Role:     *role,
	})
	if err != nil {
		return err
	}
	fmt.Println("account created; run 'roomctl login' next")
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	if err := a.auth.Login(ctx, *username, *password); err != nil {
		return err
	}
	fmt.Println("logged in")
	return nil
}

func (a *app) profile(ctx context.Context) error {
	p, err := a.auth.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n  name: %s\n  role: %s\n", p.Username, p.Email, p.FullName, p.Role)
	return nil
}

func (a *app) listRooms(ctx context.Context) error {
	rooms, err := a.rooms.List(ctx)
	if err != nil {
		return err
	}
	for _, r := range rooms {
		marker := " "
		if !r.Bookable() {
			marker = "x"
		}
		fmt.Printf("[%s] %-8s %-16s %-10s cap=%d\n", marker, r.Name, r.Building, r.Type, r.Capacity)
	}
	return nil
}

func (a *app) list(ctx context.Context) error {
	if err := a.controller.Activate(ctx); err != nil {
		return err
	}
	_, rows := a.controller.Snapshot()
	if len(rows) == 0 {
		fmt.Println("no bookings")
		return nil
	}
	for _, row := range rows {
		b := row.Booking
		fmt.Printf("%-36s %-8s %s - %s  %.1fh  %s",
			b.ID, b.RoomName,
			b.StartsAt.Local().Format("2006-01-02 15:04"),
			b.EndsAt.Local().Format("15:04"),
			b.DurationHours, b.Status)
		if b.OwnerName != "" && a.controller.Identity().IsAdmin() {
			fmt.Printf("  (%s)", b.OwnerName)
		}
		fmt.Println()
	}
	return nil
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	room := fs.String("room", "", "room id")
	start := fs.String("start", "", `start time, "2006-01-02 15:04"`)
	end := fs.String("end", "", `end time, "2006-01-02 15:04"`)
	_ = fs.Parse(args)

	draft, err := parseDraft(*room, *start, *end)
	if err != nil {
		return err
	}
	if err := a.controller.Activate(ctx); err != nil {
		return err
	}
	if err := a.controller.Create(ctx, draft); err != nil {
		return err
	}
	fmt.Println("booking created")
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.String("id", "", "booking id")
	room := fs.String("room", "", "room id (unchanged when empty)")
	start := fs.String("start", "", `start time, "2006-01-02 15:04"`)
	end := fs.String("end", "", `end time, "2006-01-02 15:04"`)
	_ = fs.Parse(args)

	draft, err := parseDraft(*room, *start, *end)
	if err != nil {
		return err
	}
	if err := a.controller.Activate(ctx); err != nil {
		return err
	}
	if err := a.controller.SubmitEdit(ctx, *id, draft); err != nil {
		return err
	}
	fmt.Println("booking updated")
	return nil
}

func (a *app) rowAction(ctx context.Context, args []string, action func(context.Context, string) error) error {
	fs := flag.NewFlagSet("action", flag.ExitOnError)
	id := fs.String("id", "", "booking id")
	_ = fs.Parse(args)

	if err := a.controller.Activate(ctx); err != nil {
		return err
	}
	if err := action(ctx, *id); err != nil {
		return err
	}
	fmt.Println("done")
	return nil
}

func parseDraft(room, start, end string) (service.Draft, error) {
	startAt, err := service.ParseDateTime(start, time.Local)
	if err != nil {
		return service.Draft{}, fmt.Errorf("start: %w", err)
	}
	endAt, err := service.ParseDateTime(end, time.Local)
	if err != nil {
		return service.Draft{}, fmt.Errorf("end: %w", err)
	}
	return service.Draft{
		RoomID:        room,
		Start:         startAt,
		End:           endAt,
		DurationHours: service.ComputeDuration(startAt, endAt),
	}, nil
}
