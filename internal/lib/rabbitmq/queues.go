package rabbitmq

// Ключи маршрутизации доменных событий.
const (
	RoutingUserCreated         = "user.created"
	RoutingUserDeleted         = "user.deleted"
	RoutingSubscriptionCreated = "subscription.created"
	RoutingTemplateCreated     = "template.created"
	RoutingPaymentRecorded     = "payment.recorded"
)

// QueueConfig описывает очередь и ключ, которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetEventQueues возвращает очереди, по одной на каждый тип события.
func GetEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "tracker.user.created", RoutingKey: RoutingUserCreated},
		{QueueName: "tracker.user.deleted", RoutingKey: RoutingUserDeleted},
		{QueueName: "tracker.subscription.created", RoutingKey: RoutingSubscriptionCreated},
		{QueueName: "tracker.template.created", RoutingKey: RoutingTemplateCreated},
		{QueueName: "tracker.payment.recorded", RoutingKey: RoutingPaymentRecorded},
	}
}
