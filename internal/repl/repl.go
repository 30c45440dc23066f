// Package repl is the local interactive frontend: the same text
// commands the chat surface accepts, driven from a readline loop.
package repl

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"github.com/notexe/remind-bot/internal/config"
	"github.com/notexe/remind-bot/internal/reminder"
	"github.com/notexe/remind-bot/internal/ui"
)

type REPL struct {
	svc       *reminder.Service
	handler   *reminder.CommandHandler
	config    *config.Config
	rl        *readline.Instance
	formatter *ui.Formatter
}

func NewREPL(svc *reminder.Service, cfg *config.Config) (*REPL, error) {
	rl, err := setupReadline()
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	return &REPL{
		svc:       svc,
		handler:   reminder.NewCommandHandler(svc),
		config:    cfg,
		rl:        rl,
		formatter: ui.NewFormatter(cfg.UI.ColoredOutput),
	}, nil
}

func (r *REPL) Start(ctx context.Context) error {
	defer r.rl.Close()

	fmt.Print(r.formatter.FormatWelcome(r.config.Defaults.Owner))

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Println("\n再见！")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		switch input {
		case "/quit", "/exit", "/q":
			fmt.Println("再见！")
			return nil
		case "/help", "/h":
			fmt.Println(r.formatter.FormatMarkdown(reminder.HelpText))
			continue
		}

		r.dispatch(input)
	}
}

func (r *REPL) dispatch(input string) {
	owner := r.config.Defaults.Owner

	if reply, handled := r.handler.Handle(input, owner); handled {
		fmt.Println(r.formatter.FormatMarkdown(reply))
		return
	}

	// 提醒 <内容> <时间短语>: first field is the content, the rest is
	// the phrase (recurrence words inside the phrase are detected by
	// the service).
	if rest, ok := strings.CutPrefix(input, "提醒 "); ok {
		parts := strings.Fields(rest)
		if len(parts) < 2 {
			fmt.Println(r.formatter.FormatError(fmt.Errorf("用法：提醒 [内容] [时间]")))
			return
		}
		content := parts[0]
		phrase := strings.Join(parts[1:], "")

		reply := r.handler.HandleCreate(
			owner,
			r.config.Defaults.Target,
			reminder.TargetKind(r.config.Defaults.TargetKind),
			content, phrase, "",
		)
		fmt.Println(r.formatter.FormatMarkdown(reply))
		return
	}

	fmt.Println(r.formatter.FormatDim("未识别的命令，输入 提醒帮助 或 /help 查看用法"))
}
