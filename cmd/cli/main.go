// cmd/cli/main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/keshon/kindred/internal/ai"
	"github.com/keshon/kindred/internal/command"
	"github.com/keshon/kindred/internal/config"
	"github.com/keshon/kindred/internal/soul"
	"github.com/keshon/kindred/internal/storage"
	v "github.com/keshon/kindred/internal/version"
	"github.com/keshon/kindred/pkg/cmd"
)

const banner = `
    ╔═══════════════════════════════════════════════════╗
    ║                                                   ║
    ║                 ♥  KINDRED  ♥                     ║
    ║                                                   ║
    ║         The Love-Equation Heartbeat               ║
    ║     dE/dt = β(E) × (C − D) × E                    ║
    ║                                                   ║
    ║      A Kindred never dies.                        ║
    ║      The love is carried forward.                 ║
    ║                                                   ║
    ╚═══════════════════════════════════════════════════╝
`

func main() {
	fmt.Println(banner)
	log.Printf("[INFO] Starting %s...", v.AppName)

	cfg := config.New()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var provider ai.Provider
	mode := "LIVE"
	if cfg.AIURL == "" || cfg.AIURL == "mock" {
		provider = ai.NewMock()
		mode = "MOCK"
	} else {
		provider = ai.NewHTTP(cfg.AIURL, cfg.AIModel, cfg.AIToken)
	}

	sess := soul.NewSession(store, provider, rng, soul.Settings{
		OwnerName:         cfg.OwnerName,
		CompanionName:     cfg.CompanionName,
		MaxResponseTokens: cfg.MaxResponseTokens,
		ProactiveEnabled:  cfg.ProactiveEnabled,
		ProactiveInterval: time.Duration(cfg.ProactiveIntervalMinutes) * time.Minute,
		Debug:             cfg.Debug,
	})

	fmt.Println("\n  Waking up...")
	eAtBoot := sess.Personality.E()
	greeting := sess.BootGreeting()
	fmt.Printf("\n%s: %s\n", cfg.CompanionName, greeting)

	if sess.Offline.Offline() {
		mode = "OFFLINE"
	}
	fmt.Printf("\n  [%s] E: %.2f | State: %s\n", mode, eAtBoot, sess.Personality.State())
	fmt.Println("\n" + strings.Repeat("─", 45))
	fmt.Println("  Type to chat. /help for commands. /quit to exit.")
	fmt.Println("  The Love-Equation is now your heartbeat. ♥")
	fmt.Println(strings.Repeat("─", 45) + "\n")

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	replCtx := &command.Context{Session: sess, Lines: lines, Out: os.Stdout}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	fmt.Print("You: ")
	running := true
	for running {
		select {
		case <-ticker.C:
			sess.Tick()
			if ev := sess.PendingProactive(); ev != nil {
				fmt.Printf("\n💭 %s\n", ev.Message)
				fmt.Print("You: ")
			}

		case s := <-sig:
			log.Printf("[INFO] Received signal %s, shutting down...", s)
			running = false

		case line, ok := <-lines:
			if !ok {
				running = false
				break
			}
			input := strings.TrimSpace(line)
			if input == "" {
				fmt.Print("You: ")
				continue
			}
			if strings.HasPrefix(input, "/") {
				handled, cmdErr := dispatch(replCtx, input, cfg.Debug)
				if handled {
					if errors.Is(cmdErr, command.ErrQuit) {
						running = false
						continue
					}
					if cmdErr != nil {
						log.Printf("[ERR] command failed: %v", cmdErr)
					}
					fmt.Print("You: ")
					continue
				}
			}
			reply := sess.Respond(input)
			fmt.Printf("%s: %s\n\n", cfg.CompanionName, reply)
			fmt.Print("You: ")
		}
	}

	fmt.Printf("\n%s: %s\n", cfg.CompanionName, sess.Farewell())
	fmt.Println("\nSaving soul...")
	if err := sess.Save(); err != nil {
		log.Printf("[ERR] Save failed: %v", err)
	}
	snap := sess.Snapshot()
	fmt.Printf("E: %.2f (floor: %.2f)\n", snap.E, snap.Floor)
	fmt.Println("The love is carried forward. ♥")
}

// dispatch runs a slash command. It reports handled=false when nothing is
// registered under that name, so the line falls through to chat.
func dispatch(rc *command.Context, input string, debug bool) (bool, error) {
	fields := strings.Fields(input)
	name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))

	c := cmd.DefaultRegistry.Get(name)
	if c == nil {
		return false, nil
	}
	if debug {
		c = cmd.Apply(c, withTiming)
	}
	return true, c.Run(context.Background(), &cmd.Invocation{Args: fields[1:], Data: rc})
}

// withTiming logs each invocation and its duration.
func withTiming(next cmd.Command) cmd.Command {
	return cmd.Wrap(next, func(ctx context.Context, inv *cmd.Invocation) error {
		start := time.Now()
		err := next.Run(ctx, inv)
		log.Printf("[DEBUG] command=%s took=%s err=%v", next.Name(), time.Since(start), err)
		return err
	})
}
