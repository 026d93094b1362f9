package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ayo6706/payment-instructions/client"
	"github.com/ayo6706/payment-instructions/internal/domain"
	"github.com/ayo6706/payment-instructions/internal/instruction"
	"github.com/ayo6706/payment-instructions/internal/models"
	"github.com/ayo6706/payment-instructions/internal/service"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func accountFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "account",
			Aliases: []string{"a"},
			Usage:   "Snapshot account as ID:BALANCE:CURRENCY (repeatable)",
		},
		&cli.StringFlag{
			Name:  "accounts-file",
			Usage: "JSON file holding the account snapshot array ('-' for stdin)",
		},
	}
}

func processCommand() *cli.Command {
	return &cli.Command{
		Name:      "process",
		Usage:     "Run an instruction through the local pipeline",
		ArgsUsage: "INSTRUCTION",
		Flags: append(accountFlags(),
			&cli.StringFlag{
				Name:  "today",
				Usage: "Pin the current UTC date (YYYY-MM-DD) used to decide whether a dated instruction is due",
			},
		),
		Action: func(c *cli.Context) error {
			text, err := instructionArg(c)
			if err != nil {
				return err
			}
			accounts, err := loadAccounts(c.StringSlice("account"), c.String("accounts-file"), os.Stdin)
			if err != nil {
				return err
			}

			svc := service.NewInstructionService(nil, zap.NewNop())
			if today := c.String("today"); today != "" {
				pinned, err := domain.ParseExecutionDate(today)
				if err != nil {
					return fmt.Errorf("invalid --today %q: %w", today, err)
				}
				svc.WithClock(func() time.Time { return pinned })
			}

			resp, err := svc.Process(context.Background(), models.ProcessRequest{
				Instruction: &text,
				Accounts:    toModelAccounts(accounts),
			})
			if err != nil {
				return fmt.Errorf("process instruction: %w", err)
			}
			return render(c, c.App.Writer, resp, func(w io.Writer) { printResponse(w, resp) })
		},
	}
}

func submitCommand() *cli.Command {
	return &cli.Command{
		Name:      "submit",
		Usage:     "Submit an instruction to a running server",
		ArgsUsage: "INSTRUCTION",
		Flags: append(accountFlags(),
			&cli.StringFlag{
				Name:  "idempotency-key",
				Usage: "Idempotency-Key header value",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "Request timeout",
			},
		),
		Action: func(c *cli.Context) error {
			text, err := instructionArg(c)
			if err != nil {
				return err
			}
			accounts, err := loadAccounts(c.StringSlice("account"), c.String("accounts-file"), os.Stdin)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), c.Duration("timeout"))
			defer cancel()

			cl := client.NewClient(c.String("server-url"), nil, nil)
			resp, err := cl.Process(ctx, text, accounts, client.ProcessOptions{
				IdempotencyKey: c.String("idempotency-key"),
			})
			if err != nil && resp == nil {
				return fmt.Errorf("submit instruction: %w", err)
			}
			if renderErr := render(c, c.App.Writer, resp, func(w io.Writer) { printClientResponse(w, resp) }); renderErr != nil {
				return renderErr
			}
			return err
		},
	}
}

func tokensCommand() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "Show how an instruction is normalized into tokens",
		ArgsUsage: "INSTRUCTION",
		Action: func(c *cli.Context) error {
			text, err := instructionArg(c)
			if err != nil {
				return err
			}
			tokens := instruction.Normalize(text)
			out := tokenReport(tokens)
			return render(c, c.App.Writer, out, func(w io.Writer) {
				for i, tok := range out.Tokens {
					fmt.Fprintf(w, "%2d  %-12s %s\n", i, tok.Upper, tok.Original)
				}
				if !out.Viable {
					fmt.Fprintf(w, "only %d tokens; at least %d required\n", len(out.Tokens), instruction.MinTokens)
				}
			})
		},
	}
}

func instructionArg(c *cli.Context) (string, error) {
	if c.NArg() < 1 {
		return "", fmt.Errorf("instruction is required")
	}
	return strings.Join(c.Args().Slice(), " "), nil
}

type tokenEntry struct {
	Upper    string `json:"upper"`
	Original string `json:"original"`
}

type tokenOutput struct {
	Tokens []tokenEntry `json:"tokens"`
	Viable bool         `json:"viable"`
}

func tokenReport(tokens instruction.Tokens) tokenOutput {
	out := tokenOutput{Tokens: make([]tokenEntry, 0, tokens.Len()), Viable: tokens.Len() >= instruction.MinTokens}
	for i := 0; i < tokens.Len(); i++ {
		original, _ := tokens.Original(i)
		out.Tokens = append(out.Tokens, tokenEntry{Upper: tokens.At(i), Original: original})
	}
	return out
}

// parseAccountFlag parses ID:BALANCE:CURRENCY. The id may itself contain colons.
func parseAccountFlag(raw string) (client.Account, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 {
		return client.Account{}, fmt.Errorf("account %q must be ID:BALANCE:CURRENCY", raw)
	}
	n := len(parts)
	balance, err := strconv.ParseInt(parts[n-2], 10, 64)
	if err != nil {
		return client.Account{}, fmt.Errorf("account %q has invalid balance: %w", raw, err)
	}
	return client.Account{
		ID:       strings.Join(parts[:n-2], ":"),
		Balance:  balance,
		Currency: parts[n-1],
	}, nil
}

// loadAccounts merges the accounts file (first) with --account flags.
func loadAccounts(flags []string, file string, stdin io.Reader) ([]client.Account, error) {
	accounts := make([]client.Account, 0, len(flags))
	if file != "" {
		var r io.Reader = stdin
		if file != "-" {
			f, err := os.Open(file)
			if err != nil {
				return nil, fmt.Errorf("open accounts file: %w", err)
			}
			defer f.Close()
			r = f
		}
		if err := json.NewDecoder(r).Decode(&accounts); err != nil {
			return nil, fmt.Errorf("decode accounts file: %w", err)
		}
	}
	for _, raw := range flags {
		acct, err := parseAccountFlag(raw)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

func toModelAccounts(in []client.Account) []models.Account {
	out := make([]models.Account, len(in))
	for i, a := range in {
		out[i] = models.Account{ID: a.ID, Balance: a.Balance, Currency: a.Currency}
	}
	return out
}
