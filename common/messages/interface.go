package messages

type (
	Closeable interface {
		Close()
	}

	//Notifier publishes sync lifecycle events to interested consumers.
	//Publishing must never block or fail a sync iteration.
	Notifier interface {
		Closeable
		NonBlockPush(eventType, externalComponent, externalID string, data map[string]interface{})
	}
)
