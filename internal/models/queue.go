package models

import "encoding/json"

// Operation is the kind of mutation carried by a queue item.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Valid reports whether op is a supported operation.
func (op Operation) Valid() bool {
	switch op {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	default:
		return false
	}
}

// ItemState is the lifecycle state of a queue item.
type ItemState string

const (
	// ItemStatePending waits for the next drain cycle.
	ItemStatePending ItemState = "pending"
	// ItemStateInFlight is being pushed to the remote right now.
	ItemStateInFlight ItemState = "in_flight"
	// ItemStateError is terminal: retries are exhausted or the remote rejected the item.
	ItemStateError ItemState = "error"
)

// QueueItem is a pending outbound mutation.
// Acknowledged items are removed from the queue; failed items are never
// dropped silently.
type QueueItem struct {
	ID            string          `json:"id"`                  // ID идентификатор элемента очереди
	EntityID      string          `json:"entityId"`            // EntityID идентификатор изменяемой сущности
	EntityType    EntityType      `json:"entityType"`          // EntityType тип сущности (раздел очереди)
	Operation     Operation       `json:"operation"`           // Operation create/update/delete
	State         ItemState       `json:"state"`               // State состояние элемента
	LastError     string          `json:"lastError,omitempty"` // LastError последняя ошибка отправки
	Payload       json.RawMessage `json:"payload,omitempty"`   // Payload сериализованная сущность
	Seq           uint64          `json:"seq"`                 // Seq порядковый номер (FIFO)
	EnqueuedAt    int64           `json:"enqueuedAt"`          // EnqueuedAt время постановки в очередь, epoch ms
	NextAttemptAt int64           `json:"nextAttemptAt"`       // NextAttemptAt не раньше этого времени, epoch ms
	Attempts      int             `json:"attempts"`            // Attempts количество неудачных попыток
}

// Clone returns a deep copy of the item.
func (i *QueueItem) Clone() *QueueItem {
	if i == nil {
		return nil
	}
	clone := *i
	if i.Payload != nil {
		clone.Payload = make(json.RawMessage, len(i.Payload))
		copy(clone.Payload, i.Payload)
	}
	return &clone
}
