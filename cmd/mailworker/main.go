package main

import (
	"log"

	"github.com/alphazero-wd/devzone/config"
	"github.com/alphazero-wd/devzone/infra/queue"
	"github.com/alphazero-wd/devzone/internal/mailworker"
)

func main() {
	cfg := config.LoadConfig()

	log.Println("mail worker starting...")
	log.Printf("KafkaBroker=%s Topic=%s GroupID=%s\n",
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
	)

	mailService := mailworker.NewMailService(cfg)
	handler := mailworker.NewMailHandler(mailService)

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
	)
	consumer.Listen()
}
