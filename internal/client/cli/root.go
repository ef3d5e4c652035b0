package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Root runs the interactive loop. Commands execute synchronously, so at most
// one upload orchestration is in flight at a time.
func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to Shareling CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "shr %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: upload, list, refresh, select, selectall, showdeleted, links, delete, resolve, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, resolve")
			}

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "upload":
			a.upload(ctx, args)
		case "list", "l":
			a.list()
		case "refresh":
			a.refresh(ctx)
		case "select":
			a.toggle(args)
		case "selectall":
			a.toggleAll()
		case "showdeleted":
			a.toggleShowDeleted()
		case "links":
			a.links()
		case "delete":
			a.deleteSelected(ctx)
		case "resolve":
			a.resolveLink(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
		}
	}
}
