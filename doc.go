// Package garage keeps the occupancy ledger of a fixed-capacity parking garage
// and bills each stay when the car leaves.
//
// Garage is designed as a library, not a service. Each garage owns its store
// and is safe for concurrent use. It provides:
//
//   - Check-in with capacity, plate and duplicate checks
//   - Checkout with a receipt and the fee for the stay
//   - Fee previews that never change occupancy
//   - Lifecycle and occupancy hooks for plugins (metrics, audit)
//   - A Forge extension that builds a garage from application config
//
// # Quick Start
//
//	g, err := garage.New(garage.Snapshot{TotalSpots: 3})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := g.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer g.Stop(ctx)
//
//	in := garage.MustParseTimestamp("2024-01-01 00:00:00")
//	_, err = g.Checkin(ctx, garage.Payload{LicensePlate: "HAI", Timestamp: in})
//
//	car, err := g.Checkout(ctx, garage.Payload{
//	    LicensePlate: "HAI",
//	    Timestamp:    in.Add(61 * time.Second),
//	})
//	fmt.Println(car.Fees) // C$3.00
//
// # Fees
//
// A stay is billed in started 30 second blocks at one dollar per block, up to
// four blocks. A checkout at the check-in instant is free.
//
//	0s        -> 0
//	1s..30s   -> 1
//	31s..60s  -> 2
//	61s..90s  -> 3
//	91s and up -> 4
//
// Amounts are integer minor units (cents). Use WithFeeCalculator to install a
// different fee.Schedule or any fee.Calculator.
//
// # Errors
//
// Every rejection wraps one of ErrValidation, ErrCapacity, ErrDuplicatePlate,
// ErrNotFound or ErrTemporal, and its Error() text is the message shown to the
// driver. A rejected call leaves the garage unchanged.
package garage
