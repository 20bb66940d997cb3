//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/lung-visualizer/internal/bootstrap"
	"github.com/yanqian/lung-visualizer/internal/domain/advice"
	"github.com/yanqian/lung-visualizer/internal/domain/assessment"
	"github.com/yanqian/lung-visualizer/internal/domain/lungviz"
	"github.com/yanqian/lung-visualizer/internal/domain/quitplan"
	"github.com/yanqian/lung-visualizer/internal/infra/config"
	httpiface "github.com/yanqian/lung-visualizer/internal/interface/http"
	"github.com/yanqian/lung-visualizer/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideRenderConfig,
		provideAssessmentConfig,
		provideQuitPlanConfig,
		provideAdviceConfig,
		provideTokenCounter,
		provideTextGenerator,
		provideVizStore,
		lungviz.NewService,
		assessment.NewService,
		advice.NewService,
		quitplan.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
