// Package kafka publica los eventos de workflow e importación en el tópico de
// notificaciones que consume el servicio de avisos.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jhoicas/Ventas-api/internal/application/workflow"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

var _ workflow.Notifier = (*Notifier)(nil)

// messageWriter lo cumple *kafkago.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Notifier implementa workflow.Notifier escribiendo en Kafka.
type Notifier struct {
	log   *logger.Logger
	w     messageWriter
	topic string
}

// NewNotifier crea un writer asíncrono hacia brokers/topic.
func NewNotifier(log *logger.Logger, brokers []string, topic string) *Notifier {
	l := log.Component("kafka")
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.LeastBytes{},
		Async:                  true,
		AllowAutoTopicCreation: true,
		Logger: kafkago.LoggerFunc(func(msg string, args ...interface{}) {
			l.Debug().Str("topic", topic).Msgf(msg, args...)
		}),
		ErrorLogger: kafkago.LoggerFunc(func(msg string, args ...interface{}) {
			l.Error().Str("topic", topic).Msgf(msg, args...)
		}),
	}
	return newNotifier(l, w, topic)
}

func newNotifier(log *logger.Logger, w messageWriter, topic string) *Notifier {
	return &Notifier{log: log, w: w, topic: topic}
}

// Notify serializa el evento y lo escribe con clave = destinatario, así los
// eventos de un mismo usuario quedan en la misma partición. Los errores se
// registran y no se propagan.
func (n *Notifier) Notify(ctx context.Context, e workflow.Event) {
	b, err := json.Marshal(e)
	if err != nil {
		n.log.Error().Err(err).Str("type", e.Type).Msg("serializar evento")
		return
	}
	err = n.w.WriteMessages(ctx, kafkago.Message{
		Topic: n.topic,
		Key:   []byte(e.UserID),
		Value: b,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(e.Type)},
		},
	})
	if err != nil {
		n.log.Error().Err(err).Str("type", e.Type).Str("entity_id", e.EntityID).Msg("publicar evento")
	}
}

// Close vacía el buffer del writer.
func (n *Notifier) Close() error {
	if err := n.w.Close(); err != nil {
		return fmt.Errorf("cerrar writer kafka: %w", err)
	}
	return nil
}
