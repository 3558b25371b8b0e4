package service

import (
	"context"
	"encoding/json"

	"equipment-chatbot-be/internal/dto"
	"equipment-chatbot-be/internal/pkg/logger"
	"equipment-chatbot-be/internal/repository/contract"
	"equipment-chatbot-be/pkg/search/keyword"
)

type IKnowledgeService interface {
	Ingest(ctx context.Context, req *dto.IngestKnowledgeRequest) (*dto.IngestKnowledgeResponse, error)
	DeleteDocument(ctx context.Context, docId string) error
}

// knowledgeService accepts documents and hands them to the indexing queue.
// Embedding and index writes happen asynchronously in the consumer; deletes
// hit both indexes synchronously.
type knowledgeService struct {
	publisherService IPublisherService
	embeddingRepo    contract.KnowledgeEmbeddingRepository
	keywordIndex     keyword.Index
	sysLogger        logger.ILogger
}

func NewKnowledgeService(
	publisherService IPublisherService,
	embeddingRepo contract.KnowledgeEmbeddingRepository,
	keywordIndex keyword.Index,
	sysLogger logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		publisherService: publisherService,
		embeddingRepo:    embeddingRepo,
		keywordIndex:     keywordIndex,
		sysLogger:        sysLogger,
	}
}

func (s *knowledgeService) Ingest(ctx context.Context, req *dto.IngestKnowledgeRequest) (*dto.IngestKnowledgeResponse, error) {
	queued := 0
	for _, doc := range req.Documents {
		payload := dto.IndexKnowledgeMessage{
			Title:         doc.Title,
			Content:       doc.Content,
			EquipmentType: doc.EquipmentType,
			ErrorCode:     doc.ErrorCode,
			Category:      doc.Category,
		}
		msgJson, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			return nil, err
		}
		queued++
	}

	s.sysLogger.Info("KNOWLEDGE_SERVICE", "Documents queued for indexing", map[string]interface{}{
		"queued": queued,
	})

	return &dto.IngestKnowledgeResponse{Queued: queued}, nil
}

// DeleteDocument removes a document from both indexes. Both deletes must
// succeed or the document stays retrievable from the surviving engine.
func (s *knowledgeService) DeleteDocument(ctx context.Context, docId string) error {
	if err := s.embeddingRepo.DeleteByDocId(ctx, docId); err != nil {
		return err
	}
	if err := s.keywordIndex.Delete(ctx, []string{docId}); err != nil {
		return err
	}

	s.sysLogger.Info("KNOWLEDGE_SERVICE", "Document deleted from both indexes", map[string]interface{}{
		"doc_id": docId,
	})
	return nil
}
