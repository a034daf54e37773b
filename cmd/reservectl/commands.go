package main

import (
	"context"
	"fmt"

	"github.com/Adda-Baaj/reservation-desk/internal/app"
	"github.com/Adda-Baaj/reservation-desk/internal/domain"
	"github.com/spf13/pflag"
)

// dispatch parses the subcommand flags and runs it against console.
func dispatch(ctx context.Context, console *app.Console, cmd string, args []string) error {
	fs := pflag.NewFlagSet(cmd, pflag.ContinueOnError)

	switch cmd {
	case "list":
		var f app.ListFilter
		fs.StringVar(&f.Date, "date", "", "only reservations on this date (yyyy-MM-dd)")
		fs.StringVar(&f.Email, "email", "", "only reservations for this email")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return console.List(ctx, f)

	case "create":
		var r domain.Reservation
		fs.StringVar(&r.Name, "name", "", "guest name")
		fs.StringVar(&r.Email, "email", "", "guest email")
		fs.StringVar(&r.Date, "date", "", "reservation date (yyyy-MM-dd)")
		fs.IntVar(&r.Seats, "seats", 1, "number of seats")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return console.Create(ctx, r)

	case "delete":
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("delete takes exactly one reservation id")
		}
		return console.Delete(ctx, fs.Arg(0))

	case "history":
		limit := fs.Int("limit", 20, "maximum records to show (0 for all)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return console.History(*limit)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
