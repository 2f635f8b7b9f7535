package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/padipos/apiclient"
	"github.com/ray-remotestate/padipos/catalog"
	"github.com/ray-remotestate/padipos/checkout"
	"github.com/ray-remotestate/padipos/models"
	"github.com/ray-remotestate/padipos/session"
	"github.com/ray-remotestate/padipos/users"
)

type repl struct {
	in        *bufio.Scanner
	out       io.Writer
	client    *apiclient.Client
	sessions  *session.Store
	catalog   *catalog.Store
	checkout  *checkout.Flow
	users     *users.Service
	exportDir string
}

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

func (r *repl) commands() map[string]command {
	return map[string]command{
		"login":     {"login <username> <password>", r.login},
		"logout":    {"logout", r.logout},
		"whoami":    {"whoami", r.whoami},
		"products":  {"products", r.products},
		"refresh":   {"refresh", r.refresh},
		"search":    {"search [term]", r.search},
		"category":  {"category <All Menu|Foods|Beverages|Dessert>", r.category},
		"add":       {"add <product id>", r.add},
		"qty":       {"qty <product id> <+n|-n>", r.qty},
		"cart":      {"cart", r.cart},
		"customer":  {"customer <name>", r.customer},
		"type":      {"type <dine-in|take-away>", r.orderType},
		"table":     {"table <detail>", r.table},
		"checkout":  {"checkout <amount received>", r.pay},
		"menu":      {"menu add|edit|delete ...", r.menu},
		"users":     {"users [username=] [email=] [role=]", r.listUsers},
		"user":      {"user add|edit|delete ...", r.user},
		"report":    {"report [from=] [to=] [type=] [category=] [page=] [per=]", r.report},
		"export":    {"export [from=] [to=] [type=] [category=]", r.export},
		"dashboard": {"dashboard [from=] [to=] [category=] [search=]", r.dashboard},
		"profile":   {"profile [username=] [email=] [password=] [picture=path] | profile rmpic", r.profile},
	}
}

func (r *repl) run(ctx context.Context) {
	cmds := r.commands()
	r.printf("PadiPos register. Type 'help' for commands.\n")
	if sess := r.sessions.Current(); sess.IsAuthenticated() {
		r.printf("Welcome back, %s (%s)\n", sess.Username, sess.Role)
	}

	for {
		r.printf("> ")
		if !r.in.Scan() {
			return
		}
		args, err := splitArgs(r.in.Text())
		if err != nil {
			r.printf("error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "quit", "exit":
			return
		case "help":
			r.help(cmds)
			continue
		}

		cmd, ok := cmds[args[0]]
		if !ok {
			r.printf("unknown command %q\n", args[0])
			continue
		}
		if err := cmd.run(ctx, args[1:]); err != nil {
			r.reportError(err, cmd.usage)
		}
	}
}

// reportError prints err for the operator. A 401 means the stored token is no
// longer accepted, so the session is dropped.
func (r *repl) reportError(err error, usage string) {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, errUsage):
		r.printf("usage: %s\n", usage)
	case errors.Is(err, models.ErrUnauthenticated):
		r.printf("please log in first\n")
	case errors.Is(err, models.ErrForbidden):
		r.printf("access denied: admin only\n")
	case errors.Is(err, catalog.ErrNotConfirmed):
		r.printf("cancelled\n")
	case errors.As(err, &verr):
		r.printf("invalid input: %v\n", err)
	case apiclient.IsUnauthorized(err):
		r.printf("session expired, please log in again\n")
		if err := r.sessions.Logout(); err != nil {
			logrus.WithError(err).Error("failed to clear session")
		}
	default:
		r.printf("error: %s\n", apiclient.Message(err))
	}
}

func (r *repl) help(cmds map[string]command) {
	for _, name := range sortedKeys(cmds) {
		r.printf("  %s\n", cmds[name].usage)
	}
	r.printf("  quit\n")
}

func (r *repl) printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// confirm asks a yes/no question on the next input line.
func (r *repl) confirm(question string) bool {
	r.printf("%s [y/N] ", question)
	if !r.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(r.in.Text()))
	return answer == "y" || answer == "yes"
}
