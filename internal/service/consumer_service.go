package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"equipment-chatbot-be/internal/dto"
	"equipment-chatbot-be/internal/entity"
	"equipment-chatbot-be/internal/repository/contract"
	"equipment-chatbot-be/pkg/embedding"
	"equipment-chatbot-be/pkg/search/keyword"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the indexing queue. Each message becomes one row in
// the vector store and one document in the keyword index, both keyed by the
// content hash so the two engines agree on identity.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	embeddingRepo     contract.KnowledgeEmbeddingRepository
	keywordIndex      keyword.Index
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	embeddingRepo contract.KnowledgeEmbeddingRepository,
	keywordIndex keyword.Index,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		embeddingRepo:     embeddingRepo,
		keywordIndex:      keywordIndex,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// DocumentId derives the shared document identifier from content. Re-ingesting
// identical content overwrites rather than duplicates.
func DocumentId(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IndexKnowledgeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal index message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	if payload.Content == "" {
		log.Printf("[ERROR] Index message with empty content, dropping")
		msg.Ack()
		return
	}

	docId := DocumentId(payload.Content)
	log.Printf("[INFO] Indexing knowledge document %s (content length: %d)", docId, len(payload.Content))

	res, err := cs.embeddingProvider.Generate(payload.Title+"\n\n"+payload.Content, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for document %s: %v", docId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	now := time.Now()
	row := &entity.KnowledgeEmbedding{
		Id:             uuid.New(),
		DocId:          docId,
		Title:          payload.Title,
		Document:       payload.Content,
		EquipmentType:  payload.EquipmentType,
		ErrorCode:      payload.ErrorCode,
		Category:       payload.Category,
		EmbeddingValue: res.Embedding.Values,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := cs.embeddingRepo.Upsert(ctx, row); err != nil {
		log.Printf("[ERROR] Failed to upsert embedding for document %s: %v", docId, err)
		msg.Nack()
		return
	}

	keywordDoc := keyword.Document{
		ID:            docId,
		Title:         payload.Title,
		Content:       payload.Content,
		EquipmentType: payload.EquipmentType,
		ErrorCode:     payload.ErrorCode,
		Category:      payload.Category,
	}
	if err := cs.keywordIndex.Index(ctx, []keyword.Document{keywordDoc}); err != nil {
		log.Printf("[ERROR] Failed to index document %s in keyword engine: %v", docId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Document indexed in both engines: %s", docId)
	msg.Ack()
}
