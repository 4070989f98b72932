package watcher

import (
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/stargirl99/Cable/pkg/logger"
)

// settlePool 在 goroutine 池中执行文件落定后的整理任务
type settlePool struct {
	pool *ants.Pool
	wg   sync.WaitGroup
}

func newSettlePool(workers int) (*settlePool, error) {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	logger.Get().Debug().Msgf("创建整理任务池，工作线程数: %d", workers)
	return &settlePool{pool: pool}, nil
}

// Submit 提交任务，池已关闭时返回错误
func (p *settlePool) Submit(task func()) error {
	p.wg.Add(1)
	err := p.pool.Submit(func() {
		defer p.wg.Done()
		task()
	})
	if err != nil {
		p.wg.Done()
	}
	return err
}

// Close 等待进行中的任务完成后释放池
func (p *settlePool) Close() {
	p.wg.Wait()
	p.pool.Release()
	logger.Get().Debug().Msg("整理任务池已关闭")
}
