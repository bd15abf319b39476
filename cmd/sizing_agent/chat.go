package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/sizing-assistant/internal/chatbot"
	"github.com/jonathan/sizing-assistant/internal/observability"
)

var (
	chatSessionID string
	chatAvatarDir string
	chatVerbose   bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant from the terminal",
	Long: `Start an interactive conversation on stdin/stdout.

Commands:
  /new       start a new session
  /clear     forget the current session and start again
  /info      show the session summary
  /suggest   show suggested follow-ups
  /clients   list catalog clients
  /products  list catalog products
  /exit      quit`,
	RunE: runChatCmd,
}

func init() {
	chatCmd.Flags().StringVar(&chatSessionID, "session", "", "Session id to use (default: a new UUID)")
	chatCmd.Flags().StringVar(&chatAvatarDir, "avatar-dir", "", "Directory where outfit previews are written as PNG files")
	chatCmd.Flags().BoolVarP(&chatVerbose, "verbose", "v", false, "Show recommendation details")
	rootCmd.AddCommand(chatCmd)
}

func runChatCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	flush := setupSentry(cfg, logger)
	defer flush()

	a, err := buildApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return runChat(cmd.Context(), a.bot, cmd.InOrStdin(), cmd.OutOrStdout(), chatOptions{
		sessionID: chatSessionID,
		avatarDir: chatAvatarDir,
		verbose:   chatVerbose,
	})
}

type chatOptions struct {
	sessionID string
	avatarDir string
	verbose   bool
}

// runChat reads one message per line until EOF or /exit.
func runChat(ctx context.Context, bot *chatbot.Bot, in io.Reader, out io.Writer, opts chatOptions) error {
	printer := observability.NewPrinter(out)
	sessionID := bot.StartConversation(opts.sessionID)
	fmt.Fprintf(out, "%s\n\n", chatbot.WelcomeMessage)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "/exit", "/quit", "/salir":
			fmt.Fprintln(out, "¡Hasta luego!")
			return nil
		case "/new":
			sessionID = bot.StartConversation("")
			fmt.Fprintf(out, "Nueva sesión: %s\n", sessionID)
			continue
		case "/clear":
			bot.ClearSession(sessionID)
			sessionID = bot.StartConversation(sessionID)
			fmt.Fprintln(out, "Conversación reiniciada.")
			continue
		case "/info":
			printSessionInfo(out, bot, sessionID)
			continue
		case "/suggest":
			printSuggestions(out, bot, sessionID)
			continue
		case "/clients":
			for _, c := range bot.AvailableClients(0) {
				fmt.Fprintf(out, "  %s  %s (%s, %d cm)\n", c.ID, c.Name, c.PreferredFit, c.HeightCM)
			}
			continue
		case "/products":
			for _, p := range bot.AvailableProducts(0) {
				fmt.Fprintf(out, "  %s  %s (%s, %s)\n", p.ID, p.Name, p.Fit, p.Fabric)
			}
			continue
		}

		resp := bot.ProcessMessage(ctx, sessionID, line)
		fmt.Fprintf(out, "\n%s\n\n", resp.Text)
		if opts.verbose && resp.Recommendation != nil {
			printer.PrintRecommendation(resp.Recommendation)
		}
		if resp.Avatar != nil && opts.avatarDir != "" {
			path, err := writeAvatar(opts.avatarDir, resp.Avatar.ClientID, resp.Avatar.ProductID, string(resp.Avatar.Size), resp.Avatar.Color, resp.Avatar.PNG)
			if err != nil {
				fmt.Fprintf(out, "(no se pudo guardar la vista previa: %v)\n", err)
			} else {
				fmt.Fprintf(out, "Vista previa guardada en %s\n", path)
			}
		}
	}
	return scanner.Err()
}

func printSessionInfo(out io.Writer, bot *chatbot.Bot, sessionID string) {
	summary, ok := bot.SessionInfo(sessionID)
	if !ok {
		fmt.Fprintln(out, "Sesión no encontrada.")
		return
	}
	fmt.Fprintf(out, "Sesión:    %s\n", summary.SessionID)
	fmt.Fprintf(out, "Turnos:    %d\n", summary.TotalTurns)
	fmt.Fprintf(out, "Clientes:  %s\n", joinOrDash(summary.ClientsMentioned))
	fmt.Fprintf(out, "Productos: %s\n", joinOrDash(summary.ProductsMentioned))
	if summary.ActiveClientID != "" || summary.ActiveProductID != "" {
		fmt.Fprintf(out, "Activos:   %s / %s\n", dashIfEmpty(summary.ActiveClientID), dashIfEmpty(summary.ActiveProductID))
	}
}

func printSuggestions(out io.Writer, bot *chatbot.Bot, sessionID string) {
	suggestions, ok := bot.Sessions().Suggestions(sessionID)
	if !ok {
		fmt.Fprintln(out, "Sesión no encontrada.")
		return
	}
	for _, q := range suggestions.NextQuestions {
		fmt.Fprintf(out, "  • %s\n", q)
	}
}

func writeAvatar(dir, clientID, productID, size, color string, png []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create avatar directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_%s_%s.png", clientID, productID, size, color))
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("failed to write avatar %s: %w", path, err)
	}
	return path, nil
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
