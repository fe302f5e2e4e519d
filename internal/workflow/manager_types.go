package workflow

import (
	"clipforge/internal/queue"
	"clipforge/internal/stage"
)

// StageSet bundles the concrete workflow handlers the manager orchestrates.
// Separator may be nil when vocal separation is disabled.
type StageSet struct {
	Fetcher   stage.Handler
	Segmenter stage.Handler
	Separator stage.Handler
	Cleaner   stage.Handler
}

type pipelineStage struct {
	name             string
	handler          stage.Handler
	startStatus      queue.Status
	processingStatus queue.Status
	doneStatus       queue.Status
}

type pipeline struct {
	stages             []pipelineStage
	statusOrder        []queue.Status
	stageByStart       map[queue.Status]pipelineStage
	processingStatuses []queue.Status
}

func (p *pipeline) finalize() {
	p.stageByStart = make(map[queue.Status]pipelineStage, len(p.stages))
	p.statusOrder = make([]queue.Status, 0, len(p.stages))
	seenProcessing := make(map[queue.Status]struct{})
	for _, stg := range p.stages {
		p.stageByStart[stg.startStatus] = stg
		p.statusOrder = append(p.statusOrder, stg.startStatus)
		if stg.processingStatus != "" {
			if _, ok := seenProcessing[stg.processingStatus]; !ok {
				p.processingStatuses = append(p.processingStatuses, stg.processingStatus)
				seenProcessing[stg.processingStatus] = struct{}{}
			}
		}
	}
}

func (p *pipeline) stageForStatus(status queue.Status) (pipelineStage, bool) {
	if p == nil {
		return pipelineStage{}, false
	}
	stg, ok := p.stageByStart[status]
	return stg, ok
}
