package jobs

import (
	"context"
	"log"
	"time"

	"github.com/Ne-x-tr-on/toolport-v1/app"
	"github.com/Ne-x-tr-on/toolport-v1/db"

	"github.com/redis/go-redis/v9"
)

const sweepLockKey = "toolport:overdue_sweep_lock"

// SpawnOverdueChecker 定时把逾期未还的发放记录标成 Overdue。
// 多实例部署时用 Redis SetNX 抢锁，同一轮只有一个实例扫。
func SpawnOverdueChecker(repo *db.Repo, rdb *redis.Client, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		sweep(repo, rdb, interval)
		for range ticker.C {
			sweep(repo, rdb, interval)
		}
	}()
}

func sweep(repo *db.Repo, rdb *redis.Client, interval time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 锁 TTL 略小于扫描周期，实例挂了锁自然过期
	ok, err := rdb.SetNX(ctx, sweepLockKey, time.Now().UTC().Format(time.RFC3339), interval-time.Second).Result()
	if err != nil {
		log.Printf("overdue sweep: lock error: %v", err)
		return
	}
	if !ok {
		return
	}

	app.OverdueSweeps.Inc()
	n, err := repo.MarkOverdue(ctx)
	if err != nil {
		log.Printf("overdue sweep: %v", err)
		return
	}
	if n > 0 {
		app.OverdueMarked.Add(float64(n))
		log.Printf("overdue sweep: marked %d delegation(s) overdue", n)
	}
}
