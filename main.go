package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tgwallet/internal/config"
	"tgwallet/internal/handler"
	"tgwallet/internal/logic/monitor"
	"tgwallet/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"
)

var configFile = flag.String("f", "etc/tgwallet.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(c)
	handler.RegisterHandlers(server, ctx)

	var depositMonitor *monitor.DepositMonitor
	if c.Monitor.Enabled {
		depositMonitor = monitor.NewDepositMonitor(ctx)
		go func() {
			if err := depositMonitor.Start(); err != nil {
				logx.Errorf("充值监控退出: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
	go func() {
		server.Start()
	}()

	<-quit
	fmt.Println("\n🛑 收到退出信号，正在优雅关闭服务...")
	if depositMonitor != nil {
		depositMonitor.Stop()
	}
	fmt.Println("✅ 服务已安全退出")
}
