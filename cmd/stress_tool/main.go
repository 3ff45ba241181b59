package main

import (
	"context"
	"flag"
	"fmt"
	"sync"
	"time"

	"photofeed_client/internal/app"
	postModel "photofeed_client/internal/domain/post/model"
	"photofeed_client/internal/pkg/config"
	"photofeed_client/pkg/logger"
	"photofeed_client/pkg/utils"

	"go.uber.org/zap"
)

// 对 devserver 并发切换同一帖子的点赞，观察无去重情况下的计数结果
func main() {
	var (
		workers = flag.Int("workers", 200, "并发协程数")
		rounds  = flag.Int("rounds", 5, "每个协程切换点赞的次数")
	)
	flag.Parse()

	config.LoadConfig()
	cfg := config.GlobalConfig
	if err := logger.Init(cfg.App.Env); err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		return
	}
	defer logger.Sync()

	a, err := app.Init(cfg)
	if err != nil {
		logger.Log.Fatal("init app failed", zap.Error(err))
	}
	defer app.Shutdown()

	ctx := context.Background()
	if err := a.Posts.LoadPosts(ctx, &utils.Pagination{Page: 1}); err != nil {
		logger.Log.Fatal("load feed failed", zap.Error(err))
	}
	posts := a.Posts.Posts()
	if len(posts) == 0 {
		fmt.Println("feed 为空，请使用 -seed 启动 devserver")
		return
	}
	target := posts[0]

	fmt.Printf("开始压测：%d 个协程，每个切换 %d 次点赞 (PostID: %s, Likes: %d)\n",
		*workers, *rounds, target.ID, target.Likes)

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		successCount int
		failCount    int
	)
	start := time.Now()

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < *rounds; r++ {
				err := a.Posts.ToggleLike(ctx, target.ID)
				mu.Lock()
				if err != nil {
					failCount++
				} else {
					successCount++
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	duration := time.Since(start)
	total := *workers * *rounds

	local := likesOf(a.Posts.Posts(), target.ID)
	if err := a.Posts.LoadPosts(ctx, &utils.Pagination{Page: 1}); err != nil {
		logger.Log.Fatal("reload feed failed", zap.Error(err))
	}
	remote := likesOf(a.Posts.Posts(), target.ID)

	fmt.Println("--------------------------------------------------")
	fmt.Printf("压测结束，耗时: %v\n", duration)
	fmt.Printf("总请求数: %d\n", total)
	fmt.Printf("QPS: %.2f\n", float64(total)/duration.Seconds())
	fmt.Printf("成功: %d, 失败: %d\n", successCount, failCount)
	fmt.Printf("点赞数 本地: %d, 服务端: %d (初始: %d)\n", local, remote, target.Likes)
	fmt.Println("--------------------------------------------------")
}

func likesOf(posts []postModel.Post, id string) int {
	for _, p := range posts {
		if p.ID == id {
			return p.Likes
		}
	}
	return 0
}
