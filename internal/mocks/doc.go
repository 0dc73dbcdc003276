// Package mocks provides function-field mock implementations of the
// application's interfaces for use in tests.
//
// Each mock exposes one XxxFn field per interface method. A nil field falls
// back to the mock's default values, so tests only wire the calls they care
// about:
//
//	svc := &mocks.MockTaskService{
//	    GetTaskFn: func(ctx context.Context, id int64) (*domain.Task, error) {
//	        return nil, service.ErrTaskNotFound
//	    },
//	}
package mocks
