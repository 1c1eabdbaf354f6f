package cmd

import (
	"encoding/binary"
	"fmt"
	"memscan/pkg/logflags"
	"memscan/pkg/scanslot"
	"memscan/service"
	"strconv"

	"github.com/urfave/cli"
)

var logFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "logFlag, f",
		Usage: "enable debug logging",
	},
	cli.StringFlag{
		Name:  "logStr, s",
		Usage: "comma separated subsystems to debug log: http, grpc, session or all",
		Value: "session",
	},
	cli.StringFlag{
		Name:  "logDesc, d",
		Usage: "specify the log file path",
		Value: logflags.DefaultLogDesc,
	},
}

var srvFlag = cli.StringFlag{
	Name:  "srv",
	Usage: "transport between the terminal and the scan session: http or grpc",
	Value: "http",
}

var sessionFlags = []cli.Flag{
	srvFlag,
	cli.IntFlag{
		Name:  "slots",
		Usage: "number of scan slots",
		Value: scanslot.DefaultSlots,
	},
	cli.IntFlag{
		Name:  "capacity",
		Usage: "maximum number of hits kept per slot",
		Value: scanslot.DefaultCapacity,
	},
	cli.BoolFlag{
		Name:  "big-endian",
		Usage: "decode scanned values as big endian",
	},
	cli.StringFlag{
		Name:  "start",
		Usage: "default start address of a fresh scan",
	},
	cli.StringFlag{
		Name:  "end",
		Usage: "default end address of a fresh scan, defaults to start plus 0x10000",
	},
}

func withFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}

func serviceConfig(ctx *cli.Context) service.Config {
	return service.Config{
		LogFlag: ctx.Bool("logFlag"),
		LogStr:  ctx.String("logStr"),
		LogDest: ctx.String("logDesc"),
	}
}

func sessionOptions(ctx *cli.Context) (service.SessionOptions, error) {
	opts := service.SessionOptions{
		Slots:    ctx.Int("slots"),
		Capacity: ctx.Int("capacity"),
		Order:    binary.LittleEndian,
	}
	if ctx.Bool("big-endian") {
		opts.Order = binary.BigEndian
	}

	rng, err := defaultRange(ctx.String("start"), ctx.String("end"))
	if err != nil {
		return opts, err
	}
	opts.Range = rng
	return opts, nil
}

func defaultRange(startStr, endStr string) (*scanslot.Range, error) {
	if startStr == "" {
		if endStr != "" {
			return nil, fmt.Errorf("--end requires --start")
		}
		return nil, nil
	}

	start, err := strconv.ParseUint(startStr, 0, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid start address %q", startStr)
	}
	end := start + service.DefaultRangeSize
	if endStr != "" {
		if end, err = strconv.ParseUint(endStr, 0, 64); err != nil {
			return nil, fmt.Errorf("invalid end address %q", endStr)
		}
	}
	if end <= start {
		return nil, fmt.Errorf("end address %#x is not above start %#x", end, start)
	}
	return &scanslot.Range{Start: start, End: end}, nil
}
