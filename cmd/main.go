// Command algoassist answers competitive-programming queries: contest and
// problem lookups against the aggregation API, and Luogu profile cards.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rodaine/table"
	"github.com/savioxavier/termlink"

	"github.com/tabriszx/algoassist/internal/adapters/bindings"
	"github.com/tabriszx/algoassist/internal/adapters/clist"
	"github.com/tabriszx/algoassist/internal/adapters/luogu"
	"github.com/tabriszx/algoassist/internal/adapters/render"
	"github.com/tabriszx/algoassist/internal/app"
	"github.com/tabriszx/algoassist/internal/config"
	"github.com/tabriszx/algoassist/internal/domain/format"
	"github.com/tabriszx/algoassist/pkg/logger"
	"github.com/tabriszx/algoassist/pkg/metrics"
)

const usage = `usage: algoassist <command> [args]

commands:
  today                     今日比赛
  recent                    近期比赛
  contests [平台id] [天数] [--table]
  problems <比赛id>          比赛题目
  clist                     查询官网
  bind <chat-user> <洛谷用户名或uid>
  card <洛谷用户名或uid>
  mycard <chat-user>
`

func main() {
	os.Exit(run())
}

func run() int {
	// .env first so config sees it
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logging:", err)
		return 1
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return 1
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, log)
	}

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Print(usage)
		return 2
	}

	contestClient := clist.New(
		clist.WithBaseURL(cfg.ClistBaseURL),
		clist.WithCredentials(cfg.ClistUsername, cfg.ClistAPIKey),
		clist.WithOrderBy(cfg.OrderBy),
		clist.WithLimit(cfg.Limit),
		clist.WithLogger(log.Named("clist")),
	)
	judgeClient := luogu.New(
		luogu.WithBaseURL(cfg.LuoguBaseURL),
		luogu.WithLogger(log.Named("luogu")),
	)

	store, err := bindings.Open(cfg.BindingPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open binding store:", err)
		return 1
	}
	defer store.Close()

	renderer, err := render.New(cfg.CardDir(),
		render.WithWidth(cfg.CardWidth),
		render.WithScale(cfg.CardScale),
		render.WithLogger(log.Named("render")),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build renderer:", err)
		return 1
	}

	svc := app.New(
		app.WithContestSource(contestClient),
		app.WithJudgeSource(judgeClient),
		app.WithBindings(store),
		app.WithRenderer(renderer),
		app.WithFormatter(format.New()),
		app.WithDays(cfg.Days),
		app.WithLogger(log.Named("app")),
	)

	return dispatch(ctx, svc, contestClient, cfg.Days, args)
}

func dispatch(ctx context.Context, svc *app.Service, contestClient *clist.Client, defaultDays int, args []string) int {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "today":
		fmt.Println(svc.TodayContests(ctx))
		return 0

	case "recent":
		fmt.Println(svc.RecentContests(ctx))
		return 0

	case "clist":
		fmt.Println(app.AggregatorHomeURL)
		return 0

	case "contests":
		return contestsCmd(ctx, svc, contestClient, defaultDays, rest)

	case "problems":
		if len(rest) != 1 {
			fmt.Print(usage)
			return 2
		}
		contestID, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			fmt.Println("比赛id必须是数字")
			return 2
		}
		fmt.Println(svc.Problems(ctx, contestID))
		return 0

	case "bind":
		if len(rest) != 2 {
			fmt.Print(usage)
			return 2
		}
		if err := svc.Bind(ctx, rest[0], rest[1]); err != nil {
			fmt.Println(replyForError(err))
			return 1
		}
		fmt.Println("绑定成功")
		return 0

	case "card":
		if len(rest) != 1 {
			fmt.Print(usage)
			return 2
		}
		path, err := svc.Card(ctx, rest[0])
		if err != nil {
			fmt.Println(replyForError(err))
			return 1
		}
		fmt.Println(path)
		return 0

	case "mycard":
		if len(rest) != 1 {
			fmt.Print(usage)
			return 2
		}
		path, err := svc.MyCard(ctx, rest[0])
		if err != nil {
			fmt.Println(replyForError(err))
			return 1
		}
		fmt.Println(path)
		return 0

	default:
		fmt.Print(usage)
		return 2
	}
}

// contestsCmd handles "contests [平台id] [天数] [--table]".
func contestsCmd(ctx context.Context, svc *app.Service, client *clist.Client, defaultDays int, args []string) int {
	var resourceID *int
	days := 0
	tabular := false

	positional := 0
	for _, arg := range args {
		if arg == "--table" {
			tabular = true
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Print(usage)
			return 2
		}
		switch positional {
		case 0:
			rid := n
			resourceID = &rid
		case 1:
			days = n
		default:
			fmt.Print(usage)
			return 2
		}
		positional++
	}

	if !tabular {
		fmt.Println(svc.Contests(ctx, resourceID, days))
		return 0
	}

	// The table path calls the client directly, so it applies the same
	// default-window fallback the service does.
	if days <= 0 {
		days = defaultDays
	}
	contests, err := client.Contests(ctx, days, resourceID)
	if err != nil {
		var ferr *clist.FetchError
		if errors.As(err, &ferr) {
			fmt.Printf("比赛获取失败,状态码%d\n", ferr.Sentinel())
		} else {
			fmt.Println("比赛获取失败,状态码0")
		}
		return 1
	}
	if len(contests) == 0 {
		fmt.Println("近期没有比赛安排哦~")
		return 0
	}

	tbl := table.New("ID", "比赛名称", "开始时间", "链接")
	for _, c := range contests {
		link := "无链接"
		if c.Href != "" {
			link = termlink.Link(c.Event, c.Href)
		}
		tbl.AddRow(c.ID, c.Event, localStart(c.Start), link)
	}
	tbl.Print()
	return 0
}

// localStart converts an ISO start instant to local "YYYY-MM-DD HH:MM".
func localStart(start string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, start, time.UTC); err == nil {
			return t.Local().Format("2006-01-02 15:04")
		}
	}
	return start
}

func replyForError(err error) string {
	switch {
	case errors.Is(err, luogu.ErrUserNotFound):
		return "未找到该用户"
	case errors.Is(err, bindings.ErrUnbound):
		return "尚未绑定洛谷账号,请先使用 bind 绑定"
	case errors.Is(err, luogu.ErrNoData):
		return "获取用户信息失败"
	case errors.Is(err, render.ErrUnavailable):
		return "卡片生成失败,请稍后再试"
	default:
		return "卡片生成失败"
	}
}

func serveMetrics(ctx context.Context, addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, "metrics server failed", logger.Error(err))
	}
}
